// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host wraps a cpu.CPU and cpu.Bus in an interactive command shell:
// a REPL for stepping and running programs, inspecting and modifying
// registers and memory, and setting execution and data breakpoints.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/tholborn/go6502/cpu"
	"github.com/tholborn/go6502/disasm"
)

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("go6502", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Data:     (*Host).cmdHelp,
		},
		{
			Name:     "breakpoint",
			Shortcut: "b",
			Brief:    "Breakpoint commands",
			Subcommands: cmd.NewTree("Breakpoint", []cmd.Command{
				{
					Name:     "list",
					Brief:    "List breakpoints",
					HelpText: "breakpoint list",
					Data:     (*Host).cmdBreakpointList,
				},
				{
					Name:     "add",
					Brief:    "Add a breakpoint",
					HelpText: "breakpoint add <address>",
					Data:     (*Host).cmdBreakpointAdd,
				},
				{
					Name:     "remove",
					Brief:    "Remove a breakpoint",
					HelpText: "breakpoint remove <address>",
					Data:     (*Host).cmdBreakpointRemove,
				},
				{
					Name:     "enable",
					Brief:    "Enable a breakpoint",
					HelpText: "breakpoint enable <address>",
					Data:     (*Host).cmdBreakpointEnable,
				},
				{
					Name:     "disable",
					Brief:    "Disable a breakpoint",
					HelpText: "breakpoint disable <address>",
					Data:     (*Host).cmdBreakpointDisable,
				},
			}),
		},
		{
			Name:     "databreakpoint",
			Shortcut: "db",
			Brief:    "Data breakpoint commands",
			Subcommands: cmd.NewTree("Data breakpoint", []cmd.Command{
				{
					Name:     "list",
					Brief:    "List data breakpoints",
					HelpText: "databreakpoint list",
					Data:     (*Host).cmdDataBreakpointList,
				},
				{
					Name:     "add",
					Brief:    "Add a data breakpoint",
					HelpText: "databreakpoint add <address> [<value>]",
					Data:     (*Host).cmdDataBreakpointAdd,
				},
				{
					Name:     "remove",
					Brief:    "Remove a data breakpoint",
					HelpText: "databreakpoint remove <address>",
					Data:     (*Host).cmdDataBreakpointRemove,
				},
				{
					Name:     "enable",
					Brief:    "Enable a data breakpoint",
					HelpText: "databreakpoint enable <address>",
					Data:     (*Host).cmdDataBreakpointEnable,
				},
				{
					Name:     "disable",
					Brief:    "Disable a data breakpoint",
					HelpText: "databreakpoint disable <address>",
					Data:     (*Host).cmdDataBreakpointDisable,
				},
			}),
		},
		{
			Name:     "disassemble",
			Shortcut: "d",
			Brief:    "Disassemble code",
			HelpText: "disassemble [<address>] [<lines>]",
			Data:     (*Host).cmdDisassemble,
		},
		{
			Name:     "evaluate",
			Shortcut: "e",
			Brief:    "Evaluate an expression",
			HelpText: "evaluate <expression>",
			Data:     (*Host).cmdEval,
		},
		{
			Name:     "load",
			Brief:    "Load a binary file into memory",
			HelpText: "load <filename> <address>",
			Data:     (*Host).cmdLoad,
		},
		{
			Name:  "memory",
			Brief: "Memory commands",
			Subcommands: cmd.NewTree("Memory", []cmd.Command{
				{
					Name:     "dump",
					Brief:    "Dump memory at address",
					HelpText: "memory dump [<address>] [<bytes>]",
					Data:     (*Host).cmdMemoryDump,
				},
				{
					Name:     "set",
					Brief:    "Set memory at address",
					HelpText: "memory set <address> <byte> [<byte> ...]",
					Data:     (*Host).cmdMemorySet,
				},
			}),
		},
		{
			Name:     "quit",
			Brief:    "Quit the program",
			HelpText: "quit",
			Data:     (*Host).cmdQuit,
		},
		{
			Name:     "registers",
			Shortcut: "r",
			Brief:    "Display register contents",
			HelpText: "registers",
			Data:     (*Host).cmdRegisters,
		},
		{
			Name:     "reset",
			Brief:    "Reset the CPU",
			HelpText: "reset",
			Data:     (*Host).cmdReset,
		},
		{
			Name:     "run",
			Brief:    "Run the CPU",
			HelpText: "run [<address>]",
			Data:     (*Host).cmdRun,
		},
		{
			Name:     "set",
			Brief:    "Set a configuration variable",
			HelpText: "set <var> <value>",
			Data:     (*Host).cmdSet,
		},
		{
			Name:     "step",
			Shortcut: "s",
			Brief:    "Step the CPU",
			HelpText: "step [<count>]",
			Data:     (*Host).cmdStep,
		},

		{Name: "ba", Alias: "breakpoint add"},
		{Name: "br", Alias: "breakpoint remove"},
		{Name: "bl", Alias: "breakpoint list"},
		{Name: "be", Alias: "breakpoint enable"},
		{Name: "bd", Alias: "breakpoint disable"},
		{Name: "dbl", Alias: "databreakpoint list"},
		{Name: "dba", Alias: "databreakpoint add"},
		{Name: "dbr", Alias: "databreakpoint remove"},
		{Name: "dbe", Alias: "databreakpoint enable"},
		{Name: "dbd", Alias: "databreakpoint disable"},
		{Name: "m", Alias: "memory dump"},
		{Name: "ms", Alias: "memory set"},
	})
}

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota

	displayAll = displayRegisters
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

// A Host represents a fully emulated 6502 system: a CPU, a memory bus, and
// a built-in debugger, wrapped in an interactive command shell.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	bus         *cpu.Bus
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *cmd.Selection
	state       state
	exprParser  *exprParser
	settings    *settings
}

// New creates a new 6502 host environment backed by a machine bus with
// 8KB of RAM mounted at $0000-$1FFF.
func New() *Host {
	h := &Host{
		state:      stateProcessingCommands,
		exprParser: newExprParser(),
		settings:   newSettings(),
	}

	h.bus = cpu.NewMachineBus()
	h.cpu = cpu.NewCPU(h.bus)

	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// CPU returns the host's emulated CPU.
func (h *Host) CPU() *cpu.CPU { return h.cpu }

// Bus returns the host's memory bus.
func (h *Host) Bus() *cpu.Bus { return h.bus }

// RunCommands accepts host commands from a reader and writes results to a
// writer. If interactive is true, a prompt is displayed while the host
// waits for the next command.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

// Break interrupts a running CPU, returning the host to command mode.
func (h *Host) Break() {
	h.println()

	if h.state == stateRunning {
		h.displayPC()
	}
	if h.state == stateProcessingCommands {
		h.prompt()
	}
	h.state = stateProcessingCommands
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.Breakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if h.debugger.Breakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b := h.debugger.Breakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = false
	h.printf("Breakpoint at $%04X enabled.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b := h.debugger.Breakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = true
	h.printf("Breakpoint at $%04X disabled.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled  Value")
	h.println("----- -------  -----")
	for _, b := range h.debugger.DataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if len(c.Args) > 1 {
		value, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if h.debugger.DataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b := h.debugger.DataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = false
	h.printf("Data breakpoint at $%04X enabled.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b := h.debugger.DataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = true
	h.printf("Data breakpoint at $%04X disabled.\n", addr)
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	var addr uint16
	if len(c.Args) > 0 {
		switch c.Args[0] {
		case "$", ".":
			addr = h.settings.NextDisasmAddr
			if c.Args[0] == "." || addr == 0 {
				addr = h.cpu.Reg.PC
			}
		default:
			a, err := h.parseExpr(c.Args[0])
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			addr = a
		}
	} else {
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next, err := h.disassemble(addr, 0)
		if err != nil {
			h.printf("%v\n", err)
			break
		}
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	return nil
}

func (h *Host) cmdEval(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}
	v, err := h.parseExpr(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("$%04X\n", v)
	return nil
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.displayCommands(cmds)
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
		} else if s.Command.Subcommands != nil {
			h.displayCommands(s.Command.Subcommands)
		} else {
			if s.Command.HelpText != "" {
				h.printf("Syntax: %s\n\n", s.Command.HelpText)
			}
			if s.Command.Description != "" {
				h.printf("%s\n", s.Command.Description)
			} else if s.Command.Brief != "" {
				h.printf("%s.\n", s.Command.Brief)
			}
		}
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	data, err := os.ReadFile(c.Args[0])
	if err != nil {
		h.printf("Failed to read '%s': %v\n", c.Args[0], err)
		return nil
	}

	for i, b := range data {
		if err := h.bus.Write(addr+uint16(i), b); err != nil {
			h.printf("Failed to load at $%04X: %v\n", addr+uint16(i), err)
			return nil
		}
	}

	h.printf("Loaded '%s' to $%04X..$%04X\n", c.Args[0], addr, int(addr)+len(data)-1)
	h.cpu.Reg.PC = addr
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	var addr uint16
	if len(c.Args) > 0 {
		switch c.Args[0] {
		case "$", ".":
			addr = h.settings.NextMemDumpAddr
			if c.Args[0] == "." || addr == 0 {
				addr = h.cpu.Reg.PC
			}
		default:
			a, err := h.parseExpr(c.Args[0])
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			addr = a
		}
	} else {
		addr = h.settings.NextMemDumpAddr
	}

	bytes := h.settings.MemDumpBytes
	if len(c.Args) > 1 {
		b, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = b
	}

	h.dumpMemory(addr, bytes)
	h.settings.NextMemDumpAddr = addr + bytes
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	for i, a := range c.Args[1:] {
		v, err := h.parseExpr(a)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if err := h.bus.Write(addr+uint16(i), byte(v)); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.printf("Set %d bytes at $%04X.\n", len(c.Args)-1, addr)
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting program")
}

func (h *Host) cmdRegisters(c cmd.Selection) error {
	d, _, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
	h.println(d)
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	if err := h.cpu.Reset(); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.Reg.PC = pc
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.state = stateRunning
	for h.state == stateRunning {
		if err := h.cpu.Step(); err != nil {
			h.printf("%v\n", err)
			break
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)

	case 1:
		h.displayHelpText(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		v, errV := h.exprParser.Parse(value, h)
		if errV == nil {
			sz := -1
			switch key {
			case "a":
				h.cpu.Reg.A, sz = byte(v), 1
			case "x":
				h.cpu.Reg.X, sz = byte(v), 1
			case "y":
				h.cpu.Reg.Y, sz = byte(v), 1
			case "sp":
				h.cpu.Reg.SP, sz = byte(v), 1
			case ".", "pc":
				h.cpu.Reg.PC, sz = uint16(v), 2
			case "carry":
				h.cpu.Reg.Carry, sz = v != 0, 0
			case "zero":
				h.cpu.Reg.Zero, sz = v != 0, 0
			case "interruptdisable":
				h.cpu.Reg.InterruptDisable, sz = v != 0, 0
			case "decimal":
				h.cpu.Reg.Decimal, sz = v != 0, 0
			case "overflow":
				h.cpu.Reg.Overflow, sz = v != 0, 0
			case "negative":
				h.cpu.Reg.Negative, sz = v != 0, 0
			}

			switch sz {
			case 0:
				h.printf("Register %s set to %v.\n", strings.ToUpper(key), v != 0)
				return nil
			case 1:
				h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(v))
				return nil
			case 2:
				h.printf("Register %s set to $%04X.\n", strings.ToUpper(key), uint16(v))
				return nil
			}
		}

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var b bool
			b, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			err = errV
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStep(c cmd.Selection) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		if err := h.cpu.Step(); err != nil {
			h.printf("%v\n", err)
			break
		}
		switch {
		case i == h.settings.StepLines:
			h.println("...")
		case i < h.settings.StepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16, err error) {
	line, next, err := disasm.Disassemble(h.bus, addr)
	if err != nil {
		return "", addr, err
	}

	l := int(next - addr)
	b := make([]byte, l)
	for i := range b {
		b[i], _ = h.bus.Read(addr + uint16(i))
	}

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)

	if flags&displayRegisters != 0 {
		str += " " + formatRegisters(&h.cpu.Reg)
	}

	return str, next, nil
}

func formatRegisters(r *cpu.Registers) string {
	flag := func(set bool, c byte) byte {
		if set {
			return c
		}
		return '-'
	}
	flags := []byte{
		flag(r.Negative, 'N'),
		flag(r.Overflow, 'V'),
		flag(r.Decimal, 'D'),
		flag(r.InterruptDisable, 'I'),
		flag(r.Zero, 'Z'),
		flag(r.Carry, 'C'),
	}
	return fmt.Sprintf("A=%02X X=%02X Y=%02X SP=%02X P=%02X %s",
		r.A, r.X, r.Y, r.SP, r.GetP(), string(flags))
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := addr0, 6, 32; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			m, _ := h.bus.Read(a)
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for row := start; row < stop; row += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				m, _ := h.bus.Read(a)
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	if c.HelpText != "" {
		h.printf("Syntax: %s\n", c.HelpText)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(commands *cmd.Tree) {
	h.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			h.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	switch strings.ToLower(s) {
	case "a":
		return int64(h.cpu.Reg.A), nil
	case "x":
		return int64(h.cpu.Reg.X), nil
	case "y":
		return int64(h.cpu.Reg.Y), nil
	case "sp":
		return int64(h.cpu.Reg.SP) | 0x0100, nil
	case ".", "pc":
		return int64(h.cpu.Reg.PC), nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)
	h.state = stateBreakpoint

	if c.LastPC != c.Reg.PC {
		d, _, _ := h.disassemble(c.LastPC, displayAll)
		h.println(d)
	}
	h.displayPC()
}
