// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "testing"

type recordingHandler struct {
	breakpoints     []*Breakpoint
	dataBreakpoints []*DataBreakpoint
}

func (h *recordingHandler) OnBreakpoint(c *CPU, b *Breakpoint) {
	h.breakpoints = append(h.breakpoints, b)
}

func (h *recordingHandler) OnDataBreakpoint(c *CPU, b *DataBreakpoint) {
	h.dataBreakpoints = append(h.dataBreakpoints, b)
}

func TestBreakpointAddRemoveList(t *testing.T) {
	d := NewDebugger(&recordingHandler{})
	d.AddBreakpoint(0x2000)
	d.AddBreakpoint(0x1000)
	d.AddBreakpoint(0x1500)

	list := d.Breakpoints()
	if len(list) != 3 {
		t.Fatalf("len(Breakpoints()) = %d, want 3", len(list))
	}
	want := []uint16{0x1000, 0x1500, 0x2000}
	for i, addr := range want {
		if list[i].Address != addr {
			t.Errorf("Breakpoints()[%d].Address = $%04x, want $%04x", i, list[i].Address, addr)
		}
	}

	if b := d.Breakpoint(0x1500); b == nil || b.Address != 0x1500 {
		t.Errorf("Breakpoint($1500) = %v, want address $1500", b)
	}
	if b := d.Breakpoint(0x9999); b != nil {
		t.Errorf("Breakpoint($9999) = %v, want nil", b)
	}

	d.RemoveBreakpoint(0x1500)
	if b := d.Breakpoint(0x1500); b != nil {
		t.Error("breakpoint at $1500 still present after RemoveBreakpoint")
	}
	if len(d.Breakpoints()) != 2 {
		t.Errorf("len(Breakpoints()) = %d after remove, want 2", len(d.Breakpoints()))
	}
}

func TestDataBreakpointAddRemoveList(t *testing.T) {
	d := NewDebugger(&recordingHandler{})
	d.AddDataBreakpoint(0x0300)
	b := d.AddConditionalDataBreakpoint(0x0200, 0x42)
	if !b.Conditional || b.Value != 0x42 {
		t.Errorf("conditional breakpoint = %+v, want Conditional=true Value=$42", b)
	}

	list := d.DataBreakpoints()
	if len(list) != 2 {
		t.Fatalf("len(DataBreakpoints()) = %d, want 2", len(list))
	}
	if list[0].Address != 0x0200 || list[1].Address != 0x0300 {
		t.Errorf("DataBreakpoints() order = [$%04x, $%04x], want [$0200, $0300]", list[0].Address, list[1].Address)
	}

	d.RemoveDataBreakpoint(0x0300)
	if d.DataBreakpoint(0x0300) != nil {
		t.Error("data breakpoint at $0300 still present after RemoveDataBreakpoint")
	}
}

func TestDebuggerOnStepFiresAtBreakpoint(t *testing.T) {
	h := &recordingHandler{}
	d := NewDebugger(h)
	c := newTestCPU()
	c.AttachDebugger(d)
	load(t, c, 0, 0xea, 0xea, 0xea) // NOP; NOP; NOP

	d.AddBreakpoint(1) // fires once PC reaches $0001, i.e. after the first NOP
	b2 := d.AddBreakpoint(2)
	b2.Disabled = true // must not fire even though PC reaches $0002

	step(t, c) // executes NOP at $0000, PC -> $0001
	if len(h.breakpoints) != 1 || h.breakpoints[0].Address != 1 {
		t.Fatalf("breakpoints fired = %v, want one at $0001", h.breakpoints)
	}

	step(t, c) // executes NOP at $0001, PC -> $0002 (disabled breakpoint)
	if len(h.breakpoints) != 1 {
		t.Errorf("disabled breakpoint fired: %v", h.breakpoints)
	}
}

func TestDebuggerOnStoreFiresOnDataBreakpoint(t *testing.T) {
	h := &recordingHandler{}
	d := NewDebugger(h)
	c := newTestCPU()
	c.AttachDebugger(d)
	c.Reg.A = 0x42
	load(t, c, 0, 0x85, 0x10) // STA $10

	d.AddDataBreakpoint(0x10)
	step(t, c)
	if len(h.dataBreakpoints) != 1 || h.dataBreakpoints[0].Address != 0x10 {
		t.Fatalf("data breakpoints fired = %v, want one at $0010", h.dataBreakpoints)
	}
}

func TestDebuggerConditionalDataBreakpoint(t *testing.T) {
	h := &recordingHandler{}
	d := NewDebugger(h)
	c := newTestCPU()
	c.AttachDebugger(d)
	c.Reg.A = 0x99
	load(t, c, 0, 0x85, 0x10, 0x85, 0x10) // STA $10; STA $10

	d.AddConditionalDataBreakpoint(0x10, 0x42)
	step(t, c) // stores $99, doesn't match condition
	if len(h.dataBreakpoints) != 0 {
		t.Fatalf("conditional breakpoint fired on mismatched value: %v", h.dataBreakpoints)
	}

	c.Reg.A = 0x42
	step(t, c) // stores $42, matches condition
	if len(h.dataBreakpoints) != 1 {
		t.Fatalf("conditional breakpoint didn't fire on matching value")
	}
}

func TestDebuggerDisabledDataBreakpointDoesNotFire(t *testing.T) {
	h := &recordingHandler{}
	d := NewDebugger(h)
	c := newTestCPU()
	c.AttachDebugger(d)
	c.Reg.A = 0x42
	load(t, c, 0, 0x85, 0x10) // STA $10

	b := d.AddDataBreakpoint(0x10)
	b.Disabled = true
	step(t, c)
	if len(h.dataBreakpoints) != 0 {
		t.Errorf("disabled data breakpoint fired: %v", h.dataBreakpoints)
	}
}

func TestDetachDebuggerStopsNotifications(t *testing.T) {
	h := &recordingHandler{}
	d := NewDebugger(h)
	c := newTestCPU()
	c.AttachDebugger(d)
	c.DetachDebugger()
	c.Reg.A = 0x42
	load(t, c, 0, 0x85, 0x10) // STA $10
	d.AddDataBreakpoint(0x10)

	step(t, c)
	if len(h.dataBreakpoints) != 0 {
		t.Errorf("detached debugger still notified: %v", h.dataBreakpoints)
	}
}
