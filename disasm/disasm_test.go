// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"testing"

	"github.com/tholborn/go6502/cpu"
)

func newTestBus(t *testing.T) *cpu.Bus {
	t.Helper()
	b := cpu.NewBus()
	if err := b.MountRAM(0x0000, 0x2000); err != nil {
		t.Fatal(err)
	}
	return b
}

func load(t *testing.T, b *cpu.Bus, addr uint16, bytes ...byte) {
	t.Helper()
	for i, v := range bytes {
		if err := b.Write(addr+uint16(i), v); err != nil {
			t.Fatalf("write $%04x: %v", addr+uint16(i), err)
		}
	}
}

func TestDisassembleAddressingModes(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		want  string
		next  uint16
	}{
		{"implied", []byte{0xea}, "NOP ", 1},
		{"accumulator", []byte{0x0a}, "ASL ", 1},
		{"immediate", []byte{0xa9, 0x42}, "LDA #$42", 2},
		{"zeropage", []byte{0xa5, 0x10}, "LDA $10", 2},
		{"zeropage_x", []byte{0xb5, 0x10}, "LDA $10,X", 2},
		{"zeropage_y", []byte{0xb6, 0x10}, "LDX $10,Y", 2},
		{"absolute", []byte{0xad, 0x34, 0x12}, "LDA $1234", 3},
		{"absolute_x", []byte{0xbd, 0x34, 0x12}, "LDA $1234,X", 3},
		{"absolute_y", []byte{0xb9, 0x34, 0x12}, "LDA $1234,Y", 3},
		{"indirect", []byte{0x6c, 0x34, 0x12}, "JMP ($1234)", 3},
		{"indexed_indirect", []byte{0xa1, 0x10}, "LDA ($10,X)", 2},
		{"indirect_indexed", []byte{0xb1, 0x10}, "LDA ($10),Y", 2},
		{"undefined_opcode", []byte{0x02}, "??? ($02)", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBus(t)
			load(t, b, 0, tc.bytes...)
			line, next, err := Disassemble(b, 0)
			if err != nil {
				t.Fatal(err)
			}
			if line != tc.want {
				t.Errorf("line = %q, want %q", line, tc.want)
			}
			if next != tc.next {
				t.Errorf("next = $%04x, want $%04x", next, tc.next)
			}
		})
	}
}

func TestDisassembleRelativeBranchResolvesTarget(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		b := newTestBus(t)
		load(t, b, 0x1000, 0xf0, 0x05) // BEQ +5
		line, next, err := Disassemble(b, 0x1000)
		if err != nil {
			t.Fatal(err)
		}
		if line != "BEQ $1007" {
			t.Errorf("line = %q, want %q", line, "BEQ $1007")
		}
		if next != 0x1002 {
			t.Errorf("next = $%04x, want $1002", next)
		}
	})
	t.Run("backward", func(t *testing.T) {
		b := newTestBus(t)
		load(t, b, 0x1000, 0xf0, 0x80) // BEQ -128
		line, _, err := Disassemble(b, 0x1000)
		if err != nil {
			t.Fatal(err)
		}
		if line != "BEQ $0F82" {
			t.Errorf("line = %q, want %q", line, "BEQ $0F82")
		}
	})
}

// TestDisassembleIndirectPageWrapOperand confirms that Disassemble prints an
// Indirect operand verbatim from its two operand bytes. The NMOS page-wrap
// bug affects only the address the CPU resolves at execution time (see
// cpu.readWordPageWrapped); the disassembled text is unaffected by it.
func TestDisassembleIndirectPageWrapOperand(t *testing.T) {
	b := newTestBus(t)
	load(t, b, 0, 0x6c, 0xff, 0x01) // JMP ($01FF)
	line, next, err := Disassemble(b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if line != "JMP ($01FF)" {
		t.Errorf("line = %q, want %q", line, "JMP ($01FF)")
	}
	if next != 3 {
		t.Errorf("next = $%04x, want $0003", next)
	}
}

func TestDisassembleReadErrorPropagates(t *testing.T) {
	b := cpu.NewBus() // no mounts at all
	if _, _, err := Disassemble(b, 0); err == nil {
		t.Fatal("expected error disassembling unmapped address")
	}
}
