// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// instrFunc is the emulator implementation of one instruction. It receives
// the addressing mode selected by the opcode byte that dispatched to it.
type instrFunc func(c *CPU, mode Mode) error

// Instruction describes one (opcode, addressing-mode) pairing of the
// documented NMOS 6502 instruction set.
type Instruction struct {
	Name   string
	Mode   Mode
	Opcode byte
	fn     instrFunc
}

// opcodeTable is the dense 256-entry array indexed by opcode byte. Slots
// left with a nil fn correspond to opcode values undefined on the NMOS
// 6502; dispatching one is a fatal OpcodeError.
var opcodeTable [256]Instruction

func addOp(name string, mode Mode, opcode byte, fn instrFunc) {
	opcodeTable[opcode] = Instruction{Name: name, Mode: mode, Opcode: opcode, fn: fn}
}

func init() {
	addOp("LDA", Immediate, 0xa9, (*CPU).lda)
	addOp("LDA", ZeroPage, 0xa5, (*CPU).lda)
	addOp("LDA", ZeroPageX, 0xb5, (*CPU).lda)
	addOp("LDA", Absolute, 0xad, (*CPU).lda)
	addOp("LDA", AbsoluteX, 0xbd, (*CPU).lda)
	addOp("LDA", AbsoluteY, 0xb9, (*CPU).lda)
	addOp("LDA", IndexedIndirect, 0xa1, (*CPU).lda)
	addOp("LDA", IndirectIndexed, 0xb1, (*CPU).lda)

	addOp("LDX", Immediate, 0xa2, (*CPU).ldx)
	addOp("LDX", ZeroPage, 0xa6, (*CPU).ldx)
	addOp("LDX", ZeroPageY, 0xb6, (*CPU).ldx)
	addOp("LDX", Absolute, 0xae, (*CPU).ldx)
	addOp("LDX", AbsoluteY, 0xbe, (*CPU).ldx)

	addOp("LDY", Immediate, 0xa0, (*CPU).ldy)
	addOp("LDY", ZeroPage, 0xa4, (*CPU).ldy)
	addOp("LDY", ZeroPageX, 0xb4, (*CPU).ldy)
	addOp("LDY", Absolute, 0xac, (*CPU).ldy)
	addOp("LDY", AbsoluteX, 0xbc, (*CPU).ldy)

	addOp("STA", ZeroPage, 0x85, (*CPU).sta)
	addOp("STA", ZeroPageX, 0x95, (*CPU).sta)
	addOp("STA", Absolute, 0x8d, (*CPU).sta)
	addOp("STA", AbsoluteX, 0x9d, (*CPU).sta)
	addOp("STA", AbsoluteY, 0x99, (*CPU).sta)
	addOp("STA", IndexedIndirect, 0x81, (*CPU).sta)
	addOp("STA", IndirectIndexed, 0x91, (*CPU).sta)

	addOp("STX", ZeroPage, 0x86, (*CPU).stx)
	addOp("STX", ZeroPageY, 0x96, (*CPU).stx)
	addOp("STX", Absolute, 0x8e, (*CPU).stx)

	addOp("STY", ZeroPage, 0x84, (*CPU).sty)
	addOp("STY", ZeroPageX, 0x94, (*CPU).sty)
	addOp("STY", Absolute, 0x8c, (*CPU).sty)

	addOp("ADC", Immediate, 0x69, (*CPU).adc)
	addOp("ADC", ZeroPage, 0x65, (*CPU).adc)
	addOp("ADC", ZeroPageX, 0x75, (*CPU).adc)
	addOp("ADC", Absolute, 0x6d, (*CPU).adc)
	addOp("ADC", AbsoluteX, 0x7d, (*CPU).adc)
	addOp("ADC", AbsoluteY, 0x79, (*CPU).adc)
	addOp("ADC", IndexedIndirect, 0x61, (*CPU).adc)
	addOp("ADC", IndirectIndexed, 0x71, (*CPU).adc)

	addOp("SBC", Immediate, 0xe9, (*CPU).sbc)
	addOp("SBC", ZeroPage, 0xe5, (*CPU).sbc)
	addOp("SBC", ZeroPageX, 0xf5, (*CPU).sbc)
	addOp("SBC", Absolute, 0xed, (*CPU).sbc)
	addOp("SBC", AbsoluteX, 0xfd, (*CPU).sbc)
	addOp("SBC", AbsoluteY, 0xf9, (*CPU).sbc)
	addOp("SBC", IndexedIndirect, 0xe1, (*CPU).sbc)
	addOp("SBC", IndirectIndexed, 0xf1, (*CPU).sbc)

	addOp("CMP", Immediate, 0xc9, (*CPU).cmp)
	addOp("CMP", ZeroPage, 0xc5, (*CPU).cmp)
	addOp("CMP", ZeroPageX, 0xd5, (*CPU).cmp)
	addOp("CMP", Absolute, 0xcd, (*CPU).cmp)
	addOp("CMP", AbsoluteX, 0xdd, (*CPU).cmp)
	addOp("CMP", AbsoluteY, 0xd9, (*CPU).cmp)
	addOp("CMP", IndexedIndirect, 0xc1, (*CPU).cmp)
	addOp("CMP", IndirectIndexed, 0xd1, (*CPU).cmp)

	addOp("CPX", Immediate, 0xe0, (*CPU).cpx)
	addOp("CPX", ZeroPage, 0xe4, (*CPU).cpx)
	addOp("CPX", Absolute, 0xec, (*CPU).cpx)

	addOp("CPY", Immediate, 0xc0, (*CPU).cpy)
	addOp("CPY", ZeroPage, 0xc4, (*CPU).cpy)
	addOp("CPY", Absolute, 0xcc, (*CPU).cpy)

	addOp("BIT", ZeroPage, 0x24, (*CPU).bit)
	addOp("BIT", Absolute, 0x2c, (*CPU).bit)

	addOp("CLC", Implied, 0x18, (*CPU).clc)
	addOp("SEC", Implied, 0x38, (*CPU).sec)
	addOp("CLI", Implied, 0x58, (*CPU).cli)
	addOp("SEI", Implied, 0x78, (*CPU).sei)
	addOp("CLD", Implied, 0xd8, (*CPU).cld)
	addOp("SED", Implied, 0xf8, (*CPU).sed)
	addOp("CLV", Implied, 0xb8, (*CPU).clv)

	addOp("BCC", Relative, 0x90, (*CPU).bcc)
	addOp("BCS", Relative, 0xb0, (*CPU).bcs)
	addOp("BEQ", Relative, 0xf0, (*CPU).beq)
	addOp("BNE", Relative, 0xd0, (*CPU).bne)
	addOp("BMI", Relative, 0x30, (*CPU).bmi)
	addOp("BPL", Relative, 0x10, (*CPU).bpl)
	addOp("BVC", Relative, 0x50, (*CPU).bvc)
	addOp("BVS", Relative, 0x70, (*CPU).bvs)

	addOp("BRK", Implied, 0x00, (*CPU).brk)

	addOp("AND", Immediate, 0x29, (*CPU).and)
	addOp("AND", ZeroPage, 0x25, (*CPU).and)
	addOp("AND", ZeroPageX, 0x35, (*CPU).and)
	addOp("AND", Absolute, 0x2d, (*CPU).and)
	addOp("AND", AbsoluteX, 0x3d, (*CPU).and)
	addOp("AND", AbsoluteY, 0x39, (*CPU).and)
	addOp("AND", IndexedIndirect, 0x21, (*CPU).and)
	addOp("AND", IndirectIndexed, 0x31, (*CPU).and)

	addOp("ORA", Immediate, 0x09, (*CPU).ora)
	addOp("ORA", ZeroPage, 0x05, (*CPU).ora)
	addOp("ORA", ZeroPageX, 0x15, (*CPU).ora)
	addOp("ORA", Absolute, 0x0d, (*CPU).ora)
	addOp("ORA", AbsoluteX, 0x1d, (*CPU).ora)
	addOp("ORA", AbsoluteY, 0x19, (*CPU).ora)
	addOp("ORA", IndexedIndirect, 0x01, (*CPU).ora)
	addOp("ORA", IndirectIndexed, 0x11, (*CPU).ora)

	addOp("EOR", Immediate, 0x49, (*CPU).eor)
	addOp("EOR", ZeroPage, 0x45, (*CPU).eor)
	addOp("EOR", ZeroPageX, 0x55, (*CPU).eor)
	addOp("EOR", Absolute, 0x4d, (*CPU).eor)
	addOp("EOR", AbsoluteX, 0x5d, (*CPU).eor)
	addOp("EOR", AbsoluteY, 0x59, (*CPU).eor)
	addOp("EOR", IndexedIndirect, 0x41, (*CPU).eor)
	addOp("EOR", IndirectIndexed, 0x51, (*CPU).eor)

	addOp("INC", ZeroPage, 0xe6, (*CPU).inc)
	addOp("INC", ZeroPageX, 0xf6, (*CPU).inc)
	addOp("INC", Absolute, 0xee, (*CPU).inc)
	addOp("INC", AbsoluteX, 0xfe, (*CPU).inc)

	addOp("DEC", ZeroPage, 0xc6, (*CPU).dec)
	addOp("DEC", ZeroPageX, 0xd6, (*CPU).dec)
	addOp("DEC", Absolute, 0xce, (*CPU).dec)
	addOp("DEC", AbsoluteX, 0xde, (*CPU).dec)

	addOp("INX", Implied, 0xe8, (*CPU).inx)
	addOp("INY", Implied, 0xc8, (*CPU).iny)
	addOp("DEX", Implied, 0xca, (*CPU).dex)
	addOp("DEY", Implied, 0x88, (*CPU).dey)

	addOp("JMP", Absolute, 0x4c, (*CPU).jmp)
	addOp("JMP", Indirect, 0x6c, (*CPU).jmp)
	addOp("JSR", Absolute, 0x20, (*CPU).jsr)
	addOp("RTS", Implied, 0x60, (*CPU).rts)
	addOp("RTI", Implied, 0x40, (*CPU).rti)

	addOp("NOP", Implied, 0xea, (*CPU).nop)

	addOp("TAX", Implied, 0xaa, (*CPU).tax)
	addOp("TXA", Implied, 0x8a, (*CPU).txa)
	addOp("TAY", Implied, 0xa8, (*CPU).tay)
	addOp("TYA", Implied, 0x98, (*CPU).tya)
	addOp("TXS", Implied, 0x9a, (*CPU).txs)
	addOp("TSX", Implied, 0xba, (*CPU).tsx)

	addOp("PHA", Implied, 0x48, (*CPU).pha)
	addOp("PLA", Implied, 0x68, (*CPU).pla)
	addOp("PHP", Implied, 0x08, (*CPU).php)
	addOp("PLP", Implied, 0x28, (*CPU).plp)

	addOp("ASL", Accumulator, 0x0a, (*CPU).asl)
	addOp("ASL", ZeroPage, 0x06, (*CPU).asl)
	addOp("ASL", ZeroPageX, 0x16, (*CPU).asl)
	addOp("ASL", Absolute, 0x0e, (*CPU).asl)
	addOp("ASL", AbsoluteX, 0x1e, (*CPU).asl)

	addOp("LSR", Accumulator, 0x4a, (*CPU).lsr)
	addOp("LSR", ZeroPage, 0x46, (*CPU).lsr)
	addOp("LSR", ZeroPageX, 0x56, (*CPU).lsr)
	addOp("LSR", Absolute, 0x4e, (*CPU).lsr)
	addOp("LSR", AbsoluteX, 0x5e, (*CPU).lsr)

	addOp("ROL", Accumulator, 0x2a, (*CPU).rol)
	addOp("ROL", ZeroPage, 0x26, (*CPU).rol)
	addOp("ROL", ZeroPageX, 0x36, (*CPU).rol)
	addOp("ROL", Absolute, 0x2e, (*CPU).rol)
	addOp("ROL", AbsoluteX, 0x3e, (*CPU).rol)

	addOp("ROR", Accumulator, 0x6a, (*CPU).ror)
	addOp("ROR", ZeroPage, 0x66, (*CPU).ror)
	addOp("ROR", ZeroPageX, 0x76, (*CPU).ror)
	addOp("ROR", Absolute, 0x6e, (*CPU).ror)
	addOp("ROR", AbsoluteX, 0x7e, (*CPU).ror)
}

// lookup returns the instruction bound to 'opcode', or nil if the opcode is
// undefined on the NMOS 6502.
func lookup(opcode byte) *Instruction {
	inst := &opcodeTable[opcode]
	if inst.fn == nil {
		return nil
	}
	return inst
}

// Lookup exposes the opcode table to other packages (disassemblers,
// debuggers) without giving them the ability to execute an instruction
// directly.
func Lookup(opcode byte) *Instruction {
	return lookup(opcode)
}
