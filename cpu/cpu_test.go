// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "testing"

func newTestCPU() *CPU {
	c := NewCPU(NewMachineBus())
	return c
}

func load(t *testing.T, c *CPU, addr uint16, program ...byte) {
	t.Helper()
	for i, b := range program {
		if err := c.Bus.Write(addr+uint16(i), b); err != nil {
			t.Fatalf("write $%04x: %v", addr+uint16(i), err)
		}
	}
}

func step(t *testing.T, c *CPU) {
	t.Helper()
	if err := c.Step(); err != nil {
		t.Fatalf("step at $%04x: %v", c.Reg.PC, err)
	}
}

func TestResetState(t *testing.T) {
	c := newTestCPU()
	if c.Reg.A != 0 || c.Reg.X != 0 || c.Reg.Y != 0 {
		t.Errorf("A/X/Y = %d/%d/%d, want 0/0/0", c.Reg.A, c.Reg.X, c.Reg.Y)
	}
	if c.Reg.SP != 0xfd {
		t.Errorf("SP = $%02x, want $fd", c.Reg.SP)
	}
	if c.Reg.PC != 0 {
		t.Errorf("PC = $%04x, want $0000", c.Reg.PC)
	}
	if got := c.Reg.GetP(); got != 0x24 {
		t.Errorf("P = $%02x, want $24", got)
	}
}

func TestEndToEnd(t *testing.T) {
	cases := []struct {
		name    string
		program []byte
		check   func(t *testing.T, c *CPU)
	}{
		{
			"LDA_TAX_INX",
			[]byte{0xa9, 0x05, 0xaa, 0xe8},
			func(t *testing.T, c *CPU) {
				if c.Reg.A != 5 || c.Reg.X != 6 {
					t.Errorf("A/X = %d/%d, want 5/6", c.Reg.A, c.Reg.X)
				}
				if c.Reg.Zero || c.Reg.Negative {
					t.Errorf("Z/N = %v/%v, want false/false", c.Reg.Zero, c.Reg.Negative)
				}
			},
		},
		{
			"ASL_carry_out",
			[]byte{0xa9, 0x80, 0x0a},
			func(t *testing.T, c *CPU) {
				if c.Reg.A != 0x00 {
					t.Errorf("A = $%02x, want $00", c.Reg.A)
				}
				if !c.Reg.Carry || !c.Reg.Zero || c.Reg.Negative {
					t.Errorf("C/Z/N = %v/%v/%v, want true/true/false", c.Reg.Carry, c.Reg.Zero, c.Reg.Negative)
				}
			},
		},
		{
			"SBC_borrow",
			[]byte{0x38, 0xa9, 0x50, 0xe9, 0xf0},
			func(t *testing.T, c *CPU) {
				if c.Reg.A != 0x60 {
					t.Errorf("A = $%02x, want $60", c.Reg.A)
				}
				if c.Reg.Carry {
					t.Error("C = true, want false (borrow)")
				}
				if c.Reg.Zero || c.Reg.Negative {
					t.Errorf("Z/N = %v/%v, want false/false", c.Reg.Zero, c.Reg.Negative)
				}
			},
		},
		{
			"ADC_signed_overflow",
			[]byte{0x18, 0xa9, 0x7f, 0x69, 0x01},
			func(t *testing.T, c *CPU) {
				if c.Reg.A != 0x80 {
					t.Errorf("A = $%02x, want $80", c.Reg.A)
				}
				if c.Reg.Carry {
					t.Error("C = true, want false")
				}
				if !c.Reg.Overflow || !c.Reg.Negative || c.Reg.Zero {
					t.Errorf("V/N/Z = %v/%v/%v, want true/true/false", c.Reg.Overflow, c.Reg.Negative, c.Reg.Zero)
				}
			},
		},
		{
			"INC_memory_roundtrip",
			[]byte{0xa9, 0x00, 0x85, 0x10, 0xe6, 0x10, 0xa5, 0x10},
			func(t *testing.T, c *CPU) {
				if c.Reg.A != 1 {
					t.Errorf("A = %d, want 1", c.Reg.A)
				}
				v, err := c.Bus.Read(0x10)
				if err != nil || v != 1 {
					t.Errorf("mem[$10] = %d (err %v), want 1", v, err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCPU()
			load(t, c, 0, tc.program...)
			for range tc.program {
				step(t, c)
				if c.Reg.PC >= uint16(len(tc.program)) {
					break
				}
			}
			tc.check(t, c)
		})
	}
}

func TestJSRAndRTS(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0600
	load(t, c, 0x0600, 0x20, 0x34, 0x12) // JSR $1234
	load(t, c, 0x1234, 0x60)             // RTS

	step(t, c) // JSR
	if c.Reg.PC != 0x1234 {
		t.Fatalf("PC = $%04x after JSR, want $1234", c.Reg.PC)
	}
	hi, err := c.Bus.Read(0x0100 + uint16(c.Reg.SP) + 2)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := c.Bus.Read(0x0100 + uint16(c.Reg.SP) + 1)
	if err != nil {
		t.Fatal(err)
	}
	if hi != 0x06 || lo != 0x02 {
		t.Errorf("pushed return addr = $%02x%02x, want $0602", hi, lo)
	}

	step(t, c) // RTS
	if c.Reg.PC != 0x0603 {
		t.Errorf("PC = $%04x after RTS, want $0603", c.Reg.PC)
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Reg.A = 0x42
	sp := c.Reg.SP
	load(t, c, 0, 0x48, 0xa9, 0x00, 0x68) // PHA; LDA #0; PLA
	step(t, c)
	step(t, c)
	step(t, c)
	if c.Reg.A != 0x42 {
		t.Errorf("A = $%02x after PLA, want $42", c.Reg.A)
	}
	if c.Reg.SP != sp {
		t.Errorf("SP = $%02x, want $%02x (unchanged)", c.Reg.SP, sp)
	}
}

func TestPHPPLPForcesBits(t *testing.T) {
	c := newTestCPU()
	c.Reg.SetP(0x00)
	load(t, c, 0, 0x08, 0x28) // PHP; PLP
	step(t, c)
	v, err := c.Bus.Read(0x0100 + uint16(c.Reg.SP) + 1)
	if err != nil {
		t.Fatal(err)
	}
	if v&BreakBit == 0 || v&ReservedBit == 0 {
		t.Errorf("pushed P = $%02x, want B and U set", v)
	}
	step(t, c)
	if c.Reg.GetP()&BreakBit != 0 {
		t.Error("live P has B set; PLP result should read B as 0 via GetP")
	}
}

func TestShiftRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := newTestCPU()
		c.Reg.A = byte(v)
		c.Reg.Carry = false
		load(t, c, 0, 0x0a, 0x4a) // ASL A; LSR A
		step(t, c)
		step(t, c)
		want := byte(v) & 0xfe
		if c.Reg.A != want {
			t.Fatalf("ASL/LSR(%#x) = %#x, want %#x", v, c.Reg.A, want)
		}
	}
}

func TestAddressingModes(t *testing.T) {
	t.Run("indirect_indexed", func(t *testing.T) {
		c := newTestCPU()
		c.Reg.Y = 2
		load(t, c, 0, 0x02)
		load(t, c, 2, 0xfd, 0x05)
		addr, err := c.resolve(IndirectIndexed)
		if err != nil {
			t.Fatal(err)
		}
		if addr != 0x05ff {
			t.Errorf("addr = $%04x, want $05ff", addr)
		}
	})
	t.Run("indexed_indirect", func(t *testing.T) {
		c := newTestCPU()
		c.Reg.X = 2
		load(t, c, 0, 0x02)
		load(t, c, 4, 0x05, 0x10)
		addr, err := c.resolve(IndexedIndirect)
		if err != nil {
			t.Fatal(err)
		}
		if addr != 0x1005 {
			t.Errorf("addr = $%04x, want $1005", addr)
		}
	})
	t.Run("indirect_page_wrap_bug", func(t *testing.T) {
		c := newTestCPU()
		load(t, c, 0, 0xff, 0x01)
		load(t, c, 0x100, 0x00)
		load(t, c, 0x101, 0x02)
		addr, err := c.resolve(Indirect)
		if err != nil {
			t.Fatal(err)
		}
		if addr != 0x0200 {
			t.Errorf("addr = $%04x, want $0200", addr)
		}
	})
	t.Run("relative_negative", func(t *testing.T) {
		c := newTestCPU()
		c.Reg.PC = 0x1000
		load(t, c, 0x1000, 0x80)
		addr, err := c.resolve(Relative)
		if err != nil {
			t.Fatal(err)
		}
		if addr != 0x0f81 {
			t.Errorf("addr = $%04x, want $0f81", addr)
		}
	})
	t.Run("relative_positive", func(t *testing.T) {
		c := newTestCPU()
		c.Reg.PC = 0x1000
		load(t, c, 0x1000, 0x79)
		addr, err := c.resolve(Relative)
		if err != nil {
			t.Fatal(err)
		}
		if addr != 0x107a {
			t.Errorf("addr = $%04x, want $107a", addr)
		}
	})
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	c := newTestCPU()
	load(t, c, 0, 0x02) // undefined on NMOS 6502
	err := c.Step()
	if err == nil {
		t.Fatal("expected error for undefined opcode")
	}
	if _, ok := err.(*OpcodeError); !ok {
		t.Errorf("err = %T, want *OpcodeError", err)
	}
}

func TestImpliedModeReadIsFatal(t *testing.T) {
	c := newTestCPU()
	if _, err := c.load(Implied); err == nil {
		t.Fatal("expected error reading through implied mode")
	}
}

func TestBusOverlapRejected(t *testing.T) {
	b := NewBus()
	if err := b.MountRAM(0x2000, 0x100); err != nil {
		t.Fatal(err)
	}
	if err := b.MountRAM(0x2050, 0x10); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestBusUnmappedAddress(t *testing.T) {
	b := NewBus()
	if _, err := b.Read(0x4000); err == nil {
		t.Fatal("expected error reading unmapped address")
	}
}

func TestBRKPushesAndVectors(t *testing.T) {
	c := newTestCPU()
	if err := c.Bus.MountRAM(0x9000, 0x1000); err != nil {
		t.Fatal(err)
	}
	if err := c.Bus.MountRAM(0xe000, 0x2000); err != nil {
		t.Fatal(err)
	}
	load(t, c, 0xfffe, 0x00, 0x90) // BRK vector -> $9000
	load(t, c, 0, 0x00)            // BRK
	sp := c.Reg.SP
	step(t, c)
	if c.Reg.PC != 0x9000 {
		t.Errorf("PC = $%04x after BRK, want $9000", c.Reg.PC)
	}
	if !c.Reg.InterruptDisable {
		t.Error("InterruptDisable not set after BRK")
	}
	if c.Reg.SP != sp-3 {
		t.Errorf("SP = $%02x after BRK, want $%02x (return addr + P pushed)", c.Reg.SP, sp-3)
	}
	pFlags, err := c.Bus.Read(0x0100 + uint16(c.Reg.SP) + 1)
	if err != nil {
		t.Fatal(err)
	}
	if pFlags&BreakBit == 0 {
		t.Errorf("pushed P = $%02x, want B set", pFlags)
	}
}
