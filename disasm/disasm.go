// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a disassembler for the instruction-accurate
// 6502 core in package cpu.
package disasm

import (
	"fmt"

	"github.com/tholborn/go6502/cpu"
)

// modeFormat gives the operand syntax for each addressing mode, with "%s"
// standing in for the operand's hex digits.
var modeFormat = map[cpu.Mode]string{
	cpu.Implied:         "%s",
	cpu.Accumulator:     "%s",
	cpu.Immediate:       "#$%s",
	cpu.ZeroPage:        "$%s",
	cpu.ZeroPageX:       "$%s,X",
	cpu.ZeroPageY:       "$%s,Y",
	cpu.Relative:        "$%s",
	cpu.Absolute:        "$%s",
	cpu.AbsoluteX:       "$%s,X",
	cpu.AbsoluteY:       "$%s,Y",
	cpu.Indirect:        "($%s)",
	cpu.IndexedIndirect: "($%s,X)",
	cpu.IndirectIndexed: "($%s),Y",
}

const hexDigits = "0123456789ABCDEF"

// hexString renders b as a big-endian hex string with no separators.
func hexString(b []byte) string {
	buf := make([]byte, len(b)*2)
	j := len(buf) - 1
	for _, v := range b {
		buf[j] = hexDigits[v&0xf]
		buf[j-1] = hexDigits[v>>4]
		j -= 2
	}
	return string(buf)
}

// Disassemble renders the instruction at addr as "MNEMONIC operand" and
// returns the address of the instruction that follows it. Relative branch
// operands are resolved to an absolute target address rather than printed
// as a raw signed offset.
func Disassemble(bus *cpu.Bus, addr uint16) (line string, next uint16, err error) {
	opcode, err := bus.Read(addr)
	if err != nil {
		return "", addr, err
	}
	inst := cpu.Lookup(opcode)
	if inst == nil {
		return fmt.Sprintf("??? ($%02x)", opcode), addr + 1, nil
	}

	size := inst.Mode.OperandSize()
	operand := make([]byte, size)
	for i := range operand {
		operand[i], err = bus.Read(addr + 1 + uint16(i))
		if err != nil {
			return "", addr, err
		}
	}

	if inst.Mode == cpu.Relative && size == 1 {
		target := int(addr) + int(size) + 1 + int(operand[0])
		if operand[0] > 0x7f {
			target -= 256
		}
		operand = []byte{byte(target), byte(target >> 8)}
	}

	line = fmt.Sprintf("%s "+modeFormat[inst.Mode], inst.Name, hexString(operand))
	next = addr + 1 + uint16(size)
	return line, next, nil
}
