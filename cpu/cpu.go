// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements an instruction-accurate interpreter of the MOS
// 6502 processor as used in the NES.
package cpu

// Interrupt vectors. The core only implements the software BRK interrupt
// and the reset vector; hardware IRQ/NMI lines are out of scope.
const (
	vectorReset = 0xfffc
	vectorBRK   = 0xfffe
)

// CPU represents a single 6502 processor bound to a memory bus. Its zero
// value is not usable; construct one with NewCPU.
type CPU struct {
	Reg Registers
	Bus *Bus

	LastPC uint16 // PC of the instruction most recently executed

	debugger  *Debugger
	writeByte func(c *CPU, addr uint16, v byte) error
}

// NewCPU creates a CPU bound to bus, with registers in their documented
// power-on state.
func NewCPU(bus *Bus) *CPU {
	c := &CPU{
		Bus:       bus,
		writeByte: (*CPU).writeByteNormal,
	}
	c.Reg.Init()
	return c
}

// AttachDebugger routes every step and every memory store through debugger,
// so it can raise execution and data breakpoints.
func (c *CPU) AttachDebugger(d *Debugger) {
	c.debugger = d
	c.writeByte = (*CPU).writeByteDebugger
}

// DetachDebugger removes the debugger installed by AttachDebugger.
func (c *CPU) DetachDebugger() {
	c.debugger = nil
	c.writeByte = (*CPU).writeByteNormal
}

func (c *CPU) writeByteNormal(addr uint16, v byte) error {
	return c.Bus.Write(addr, v)
}

func (c *CPU) writeByteDebugger(addr uint16, v byte) error {
	c.debugger.onStore(c, addr, v)
	return c.Bus.Write(addr, v)
}

// advance moves PC past the operand bytes consumed by the addressing mode
// of the instruction just executed. Control-flow instructions (JMP, JSR,
// RTS, RTI, BRK, and taken branches) set PC directly instead and must not
// call this; a branch that is not taken calls it to skip its offset byte.
func (c *CPU) advance(mode Mode) {
	c.Reg.PC += uint16(mode.OperandSize())
}

// Step executes exactly one instruction: fetch the opcode at PC, advance
// PC past it, dispatch to the instruction body, and notify any attached
// debugger. It returns an error if the opcode is undefined or if the
// instruction faults against the memory bus.
func (c *CPU) Step() error {
	opcode, err := c.Bus.Read(c.Reg.PC)
	if err != nil {
		return err
	}

	inst := lookup(opcode)
	if inst == nil {
		return &OpcodeError{Opcode: opcode, PC: c.Reg.PC}
	}

	c.LastPC = c.Reg.PC
	c.Reg.PC++

	if err := inst.fn(c, inst.Mode); err != nil {
		return err
	}

	if c.debugger != nil {
		c.debugger.onStep(c, c.Reg.PC)
	}
	return nil
}

// push writes v to the stack and decrements SP.
func (c *CPU) push(v byte) error {
	err := c.writeByte(c, 0x0100+uint16(c.Reg.SP), v)
	c.Reg.SP--
	return err
}

// pushWord pushes addr's high byte, then its low byte.
func (c *CPU) pushWord(addr uint16) error {
	if err := c.push(hi(addr)); err != nil {
		return err
	}
	return c.push(lo(addr))
}

// pull increments SP and returns the byte at the new stack top.
func (c *CPU) pull() (byte, error) {
	c.Reg.SP++
	return c.Bus.Read(0x0100 + uint16(c.Reg.SP))
}

// pullWord pulls a low byte then a high byte and composes them.
func (c *CPU) pullWord() (uint16, error) {
	lo, err := c.pull()
	if err != nil {
		return 0, err
	}
	hi, err := c.pull()
	if err != nil {
		return 0, err
	}
	return word(lo, hi), nil
}

// branch resolves the relative target for a branch opcode and, if taken,
// jumps to it; otherwise it falls through to the next instruction.
func (c *CPU) branch(mode Mode, taken bool) error {
	target, err := c.resolve(mode)
	if err != nil {
		return err
	}
	if taken {
		c.Reg.PC = target
	} else {
		c.advance(mode)
	}
	return nil
}

// handleBRK pushes PC and P (with the break bit set), sets the
// interrupt-disable flag, and loads PC from the BRK/IRQ vector.
func (c *CPU) handleBRK() error {
	if err := c.pushWord(c.Reg.PC); err != nil {
		return err
	}
	if err := c.push(c.Reg.PushP()); err != nil {
		return err
	}
	c.Reg.InterruptDisable = true
	target, err := c.Bus.ReadWord(vectorBRK)
	if err != nil {
		return err
	}
	c.Reg.PC = target
	return nil
}

// Reset loads PC from the reset vector, as a real 6502 does on power-up.
func (c *CPU) Reset() error {
	target, err := c.Bus.ReadWord(vectorReset)
	if err != nil {
		return err
	}
	c.Reg.PC = target
	return nil
}

// ---- Instruction bodies ----
// Every function below has signature instrFunc: it receives the addressing
// mode selected by the dispatching opcode and is responsible for both
// producing its effect and advancing PC, except where noted.

func (c *CPU) adc(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	a := c.Reg.A
	carry := boolToUint16(c.Reg.Carry)
	sum := uint16(a) + uint16(m) + carry
	result := byte(sum)

	c.Reg.Carry = sum > 0xff
	c.Reg.Overflow = (a^result)&(m^result)&0x80 != 0
	c.Reg.A = result
	c.Reg.updateNZ(result)
	c.advance(mode)
	return nil
}

func (c *CPU) sbc(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	a := c.Reg.A
	borrow := boolToUint16(!c.Reg.Carry)
	diff := int16(a) - int16(m) - int16(borrow)
	result := byte(diff)

	c.Reg.Carry = diff >= 0
	c.Reg.Overflow = (a^m)&(a^result)&0x80 != 0
	c.Reg.A = result
	c.Reg.updateNZ(result)
	c.advance(mode)
	return nil
}

func (c *CPU) and(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.A &= m
	c.Reg.updateNZ(c.Reg.A)
	c.advance(mode)
	return nil
}

func (c *CPU) ora(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.A |= m
	c.Reg.updateNZ(c.Reg.A)
	c.advance(mode)
	return nil
}

func (c *CPU) eor(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.A ^= m
	c.Reg.updateNZ(c.Reg.A)
	c.advance(mode)
	return nil
}

func (c *CPU) bit(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.Zero = m&c.Reg.A == 0
	c.Reg.Negative = bit(m, 7)
	c.Reg.Overflow = bit(m, 6)
	c.advance(mode)
	return nil
}

func (c *CPU) shift(mode Mode, apply func(v byte) byte) error {
	v, err := c.load(mode)
	if err != nil {
		return err
	}
	result := apply(v)
	c.Reg.updateNZ(result)
	if err := c.store(mode, result); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) asl(mode Mode) error {
	var carry bool
	err := c.shift(mode, func(v byte) byte {
		carry = bit(v, 7)
		return v << 1
	})
	c.Reg.Carry = carry
	return err
}

func (c *CPU) lsr(mode Mode) error {
	var carry bool
	err := c.shift(mode, func(v byte) byte {
		carry = bit(v, 0)
		result := v >> 1
		return result
	})
	c.Reg.Carry = carry
	c.Reg.Negative = false
	return err
}

func (c *CPU) rol(mode Mode) error {
	oldCarry := c.Reg.Carry
	var carry bool
	err := c.shift(mode, func(v byte) byte {
		carry = bit(v, 7)
		return (v << 1) | boolToByte(oldCarry)
	})
	c.Reg.Carry = carry
	return err
}

func (c *CPU) ror(mode Mode) error {
	oldCarry := c.Reg.Carry
	var carry bool
	err := c.shift(mode, func(v byte) byte {
		carry = bit(v, 0)
		result := v >> 1
		if oldCarry {
			result |= 0x80
		}
		return result
	})
	c.Reg.Carry = carry
	return err
}

func (c *CPU) cmp(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	d := c.Reg.A - m
	c.Reg.Carry = c.Reg.A >= m
	c.Reg.updateNZ(d)
	c.advance(mode)
	return nil
}

func (c *CPU) cpx(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	d := c.Reg.X - m
	c.Reg.Carry = c.Reg.X >= m
	c.Reg.updateNZ(d)
	c.advance(mode)
	return nil
}

func (c *CPU) cpy(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	d := c.Reg.Y - m
	c.Reg.Carry = c.Reg.Y >= m
	c.Reg.updateNZ(d)
	c.advance(mode)
	return nil
}

func (c *CPU) lda(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.A = m
	c.Reg.updateNZ(m)
	c.advance(mode)
	return nil
}

func (c *CPU) ldx(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.X = m
	c.Reg.updateNZ(m)
	c.advance(mode)
	return nil
}

func (c *CPU) ldy(mode Mode) error {
	m, err := c.load(mode)
	if err != nil {
		return err
	}
	c.Reg.Y = m
	c.Reg.updateNZ(m)
	c.advance(mode)
	return nil
}

func (c *CPU) sta(mode Mode) error {
	if err := c.store(mode, c.Reg.A); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) stx(mode Mode) error {
	if err := c.store(mode, c.Reg.X); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) sty(mode Mode) error {
	if err := c.store(mode, c.Reg.Y); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) tax(mode Mode) error {
	c.Reg.X = c.Reg.A
	c.Reg.updateNZ(c.Reg.X)
	c.advance(mode)
	return nil
}

func (c *CPU) tay(mode Mode) error {
	c.Reg.Y = c.Reg.A
	c.Reg.updateNZ(c.Reg.Y)
	c.advance(mode)
	return nil
}

func (c *CPU) txa(mode Mode) error {
	c.Reg.A = c.Reg.X
	c.Reg.updateNZ(c.Reg.A)
	c.advance(mode)
	return nil
}

func (c *CPU) tya(mode Mode) error {
	c.Reg.A = c.Reg.Y
	c.Reg.updateNZ(c.Reg.A)
	c.advance(mode)
	return nil
}

func (c *CPU) tsx(mode Mode) error {
	c.Reg.X = c.Reg.SP
	c.Reg.updateNZ(c.Reg.X)
	c.advance(mode)
	return nil
}

func (c *CPU) txs(mode Mode) error {
	c.Reg.SP = c.Reg.X
	c.advance(mode)
	return nil
}

func (c *CPU) inc(mode Mode) error {
	v, err := c.load(mode)
	if err != nil {
		return err
	}
	v++
	c.Reg.updateNZ(v)
	if err := c.store(mode, v); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) dec(mode Mode) error {
	v, err := c.load(mode)
	if err != nil {
		return err
	}
	v--
	c.Reg.updateNZ(v)
	if err := c.store(mode, v); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) inx(mode Mode) error {
	c.Reg.X++
	c.Reg.updateNZ(c.Reg.X)
	c.advance(mode)
	return nil
}

func (c *CPU) iny(mode Mode) error {
	c.Reg.Y++
	c.Reg.updateNZ(c.Reg.Y)
	c.advance(mode)
	return nil
}

func (c *CPU) dex(mode Mode) error {
	c.Reg.X--
	c.Reg.updateNZ(c.Reg.X)
	c.advance(mode)
	return nil
}

func (c *CPU) dey(mode Mode) error {
	c.Reg.Y--
	c.Reg.updateNZ(c.Reg.Y)
	c.advance(mode)
	return nil
}

func (c *CPU) pha(mode Mode) error {
	if err := c.push(c.Reg.A); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) php(mode Mode) error {
	if err := c.push(c.Reg.PushP()); err != nil {
		return err
	}
	c.advance(mode)
	return nil
}

func (c *CPU) pla(mode Mode) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.Reg.A = v
	c.Reg.updateNZ(v)
	c.advance(mode)
	return nil
}

func (c *CPU) plp(mode Mode) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.Reg.SetP(v)
	c.advance(mode)
	return nil
}

func (c *CPU) jmp(mode Mode) error {
	target, err := c.resolve(mode)
	if err != nil {
		return err
	}
	c.Reg.PC = target
	return nil
}

func (c *CPU) jsr(mode Mode) error {
	target, err := c.resolve(mode)
	if err != nil {
		return err
	}
	returnAddr := c.Reg.PC + uint16(mode.OperandSize()) - 1
	if err := c.pushWord(returnAddr); err != nil {
		return err
	}
	c.Reg.PC = target
	return nil
}

func (c *CPU) rts(mode Mode) error {
	addr, err := c.pullWord()
	if err != nil {
		return err
	}
	c.Reg.PC = addr + 1
	return nil
}

func (c *CPU) rti(mode Mode) error {
	p, err := c.pull()
	if err != nil {
		return err
	}
	c.Reg.SetP(p)
	addr, err := c.pullWord()
	if err != nil {
		return err
	}
	c.Reg.PC = addr
	return nil
}

func (c *CPU) brk(mode Mode) error {
	c.Reg.PC++
	return c.handleBRK()
}

func (c *CPU) bcc(mode Mode) error { return c.branch(mode, !c.Reg.Carry) }
func (c *CPU) bcs(mode Mode) error { return c.branch(mode, c.Reg.Carry) }
func (c *CPU) beq(mode Mode) error { return c.branch(mode, c.Reg.Zero) }
func (c *CPU) bne(mode Mode) error { return c.branch(mode, !c.Reg.Zero) }
func (c *CPU) bmi(mode Mode) error { return c.branch(mode, c.Reg.Negative) }
func (c *CPU) bpl(mode Mode) error { return c.branch(mode, !c.Reg.Negative) }
func (c *CPU) bvc(mode Mode) error { return c.branch(mode, !c.Reg.Overflow) }
func (c *CPU) bvs(mode Mode) error { return c.branch(mode, c.Reg.Overflow) }

func (c *CPU) clc(mode Mode) error { c.Reg.Carry = false; c.advance(mode); return nil }
func (c *CPU) sec(mode Mode) error { c.Reg.Carry = true; c.advance(mode); return nil }
func (c *CPU) cli(mode Mode) error { c.Reg.InterruptDisable = false; c.advance(mode); return nil }
func (c *CPU) sei(mode Mode) error { c.Reg.InterruptDisable = true; c.advance(mode); return nil }
func (c *CPU) cld(mode Mode) error { c.Reg.Decimal = false; c.advance(mode); return nil }
func (c *CPU) sed(mode Mode) error { c.Reg.Decimal = true; c.advance(mode); return nil }
func (c *CPU) clv(mode Mode) error { c.Reg.Overflow = false; c.advance(mode); return nil }

func (c *CPU) nop(mode Mode) error {
	c.advance(mode)
	return nil
}
