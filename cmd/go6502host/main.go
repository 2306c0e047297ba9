// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command go6502host runs an interactive 6502 CPU debugger and monitor.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/beevik/term"
	"github.com/tholborn/go6502/host"
)

func main() {
	var loadArg string
	args := os.Args[1:]

	var scripts []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-load" && i+1 < len(args):
			i++
			loadArg = args[i]
		case strings.HasPrefix(args[i], "-load="):
			loadArg = strings.TrimPrefix(args[i], "-load=")
		default:
			scripts = append(scripts, args[i])
		}
	}

	h := host.New()

	if loadArg != "" {
		if err := loadFile(h, loadArg); err != nil {
			exitOnError(err)
		}
	}

	for _, filename := range scripts {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRawInput(fd)
		if err == nil {
			defer term.Restore(fd, oldState)
		}
	}

	h.RunCommands(os.Stdin, os.Stdout, true)
}

// loadFile parses a "-load <file>@<addr>" argument and stores the file's
// contents into the host's memory bus starting at addr.
func loadFile(h *host.Host, arg string) error {
	parts := strings.SplitN(arg, "@", 2)
	if len(parts) != 2 {
		return fmt.Errorf("-load requires <file>@<addr>")
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(parts[1], "$"), 16, 16)
	if err != nil {
		return fmt.Errorf("invalid load address %q: %w", parts[1], err)
	}

	data, err := os.ReadFile(parts[0])
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("-load: %s is empty", parts[0])
	}

	bus := h.Bus()
	if _, err := bus.Read(uint16(addr)); err != nil {
		if err := bus.MountRAM(uint16(addr), len(data)); err != nil {
			return fmt.Errorf("-load: %w", err)
		}
	}
	for i, b := range data {
		if err := bus.Write(uint16(addr)+uint16(i), b); err != nil {
			return err
		}
	}
	h.CPU().Reg.PC = uint16(addr)
	return nil
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
