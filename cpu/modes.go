// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode identifies a 6502 addressing mode: the rule that relates an
// instruction's operand bytes to an effective address or an operand
// value.
type Mode byte

// The thirteen addressing modes implemented by the documented 6502 ISA.
const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

func (m Mode) String() string {
	switch m {
	case Implied:
		return "implied"
	case Accumulator:
		return "accumulator"
	case Immediate:
		return "immediate"
	case ZeroPage:
		return "zero-page"
	case ZeroPageX:
		return "zero-page,X"
	case ZeroPageY:
		return "zero-page,Y"
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case AbsoluteX:
		return "absolute,X"
	case AbsoluteY:
		return "absolute,Y"
	case Indirect:
		return "indirect"
	case IndexedIndirect:
		return "indexed-indirect"
	case IndirectIndexed:
		return "indirect-indexed"
	default:
		return "unknown"
	}
}

// operandSize is the number of instruction-stream bytes each mode consumes
// after the opcode byte itself.
var operandSize = [...]byte{
	Implied:         0,
	Accumulator:     0,
	Immediate:       1,
	ZeroPage:        1,
	ZeroPageX:       1,
	ZeroPageY:       1,
	Relative:        1,
	Absolute:        2,
	AbsoluteX:       2,
	AbsoluteY:       2,
	Indirect:        2,
	IndexedIndirect: 1,
	IndirectIndexed: 1,
}

// OperandSize returns the number of operand bytes consumed by mode 'm'.
func (m Mode) OperandSize() byte {
	return operandSize[m]
}

// readWordPageWrapped performs a 16-bit word read, but if the low byte of
// 'addr' is 0xFF, the read restarts at the containing page's base address
// instead of straddling into the next page. This reproduces the NMOS 6502
// indirect-JMP page-wrap bug.
func (c *CPU) readWordPageWrapped(addr uint16) (uint16, error) {
	if lo(addr) == 0xff {
		addr &^= 0x00ff
	}
	return c.Bus.ReadWord(addr)
}

// resolve returns the effective address for addressing modes that operate
// against a memory location. It is an error to call resolve for Implied or
// Accumulator, which have no memory location.
func (c *CPU) resolve(mode Mode) (uint16, error) {
	switch mode {
	case Immediate:
		return c.Reg.PC, nil
	case ZeroPage:
		v, err := c.Bus.Read(c.Reg.PC)
		return uint16(v), err
	case ZeroPageX:
		v, err := c.Bus.Read(c.Reg.PC)
		return uint16(v + c.Reg.X), err
	case ZeroPageY:
		v, err := c.Bus.Read(c.Reg.PC)
		return uint16(v + c.Reg.Y), err
	case Relative:
		v, err := c.Bus.Read(c.Reg.PC)
		if err != nil {
			return 0, err
		}
		return uint16(int32(c.Reg.PC) + 1 + int32(signExtend8(v))), nil
	case Absolute:
		return c.Bus.ReadWord(c.Reg.PC)
	case AbsoluteX:
		addr, err := c.Bus.ReadWord(c.Reg.PC)
		return addr + uint16(c.Reg.X), err
	case AbsoluteY:
		addr, err := c.Bus.ReadWord(c.Reg.PC)
		return addr + uint16(c.Reg.Y), err
	case Indirect:
		ptr, err := c.Bus.ReadWord(c.Reg.PC)
		if err != nil {
			return 0, err
		}
		return c.readWordPageWrapped(ptr)
	case IndexedIndirect:
		zp, err := c.Bus.Read(c.Reg.PC)
		if err != nil {
			return 0, err
		}
		return c.Bus.ReadWord(uint16(zp + c.Reg.X))
	case IndirectIndexed:
		zp, err := c.Bus.Read(c.Reg.PC)
		if err != nil {
			return 0, err
		}
		addr, err := c.Bus.ReadWord(uint16(zp))
		return addr + uint16(c.Reg.Y), err
	default:
		return 0, &ModeError{Op: "resolve", Mode: mode}
	}
}

// load reads the operand value addressed by 'mode'.
func (c *CPU) load(mode Mode) (byte, error) {
	if mode == Accumulator {
		return c.Reg.A, nil
	}
	if mode == Implied {
		return 0, &ModeError{Op: "read", Mode: mode}
	}
	addr, err := c.resolve(mode)
	if err != nil {
		return 0, err
	}
	return c.Bus.Read(addr)
}

// store writes 'v' to the operand location addressed by 'mode'.
func (c *CPU) store(mode Mode, v byte) error {
	if mode == Accumulator {
		c.Reg.A = v
		return nil
	}
	if mode == Implied || mode == Immediate {
		return &ModeError{Op: "write", Mode: mode}
	}
	addr, err := c.resolve(mode)
	if err != nil {
		return err
	}
	return c.writeByte(c, addr, v)
}
