// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Bits assigned to the processor status byte.
const (
	CarryBit            = 1 << 0
	ZeroBit             = 1 << 1
	InterruptDisableBit = 1 << 2
	DecimalBit          = 1 << 3
	BreakBit            = 1 << 4
	ReservedBit         = 1 << 5
	OverflowBit         = 1 << 6
	NegativeBit         = 1 << 7
)

// Registers holds the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter

	Carry            bool // PS: Carry
	Zero             bool // PS: Zero
	InterruptDisable bool // PS: Interrupt disable
	Decimal          bool // PS: Decimal (exposed but never honored by ADC/SBC)
	Overflow         bool // PS: Overflow
	Negative         bool // PS: Negative (sign)
}

// Init resets the registers to the CPU's documented power-on state:
// A=X=Y=0, SP=0xfd, P=0x24 (InterruptDisable and the always-1 reserved
// bit set), PC=0.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xfd
	r.PC = 0
	r.SetP(0x24)
}

// GetP packs the processor status flags into a single byte. The B bit is
// always reported as 0 and the reserved bit as 1, matching the live value
// of P outside of a push.
func (r *Registers) GetP() byte {
	var p byte = ReservedBit
	if r.Carry {
		p |= CarryBit
	}
	if r.Zero {
		p |= ZeroBit
	}
	if r.InterruptDisable {
		p |= InterruptDisableBit
	}
	if r.Decimal {
		p |= DecimalBit
	}
	if r.Overflow {
		p |= OverflowBit
	}
	if r.Negative {
		p |= NegativeBit
	}
	return p
}

// SetP unpacks a processor status byte into the individual flags. The B
// bit is ignored; it exists only in pushed copies of P.
func (r *Registers) SetP(p byte) {
	r.Carry = p&CarryBit != 0
	r.Zero = p&ZeroBit != 0
	r.InterruptDisable = p&InterruptDisableBit != 0
	r.Decimal = p&DecimalBit != 0
	r.Overflow = p&OverflowBit != 0
	r.Negative = p&NegativeBit != 0
}

// PushP returns the processor status byte as it should appear when pushed
// onto the stack by PHP or BRK: the reserved bit and the break bit both
// set to 1.
func (r *Registers) PushP() byte {
	return r.GetP() | BreakBit
}

// updateNZ sets Zero and Negative from the value of a computed result, per
// the "any instruction that writes a result byte" rule in the spec.
func (r *Registers) updateNZ(v byte) {
	r.Zero = v == 0
	r.Negative = v&0x80 != 0
}
