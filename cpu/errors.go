// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// AddressError reports a fault at a specific 16-bit address, such as an
// access to unmapped memory.
type AddressError struct {
	Op   string
	Addr uint16
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s $%04x: unmapped address", e.Op, e.Addr)
}

// OverlapError reports an attempt to mount a region of the address space
// that intersects a region already claimed by another mount.
type OverlapError struct {
	Start, End         uint16
	ExistStart, ExistEnd uint16
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("mount [$%04x,$%04x] overlaps existing mount [$%04x,$%04x]",
		e.Start, e.End, e.ExistStart, e.ExistEnd)
}

// ModeError reports an attempt to read or write through an addressing
// mode that has no associated memory location (implied mode), or to write
// through immediate mode.
type ModeError struct {
	Op   string
	Mode Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("illegal %s in %s addressing mode", e.Op, e.Mode)
}

// OpcodeError reports that the byte fetched at the program counter does
// not correspond to any instruction in the opcode table.
type OpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%02x at $%04x", e.Opcode, e.PC)
}
