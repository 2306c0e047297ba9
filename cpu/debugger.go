// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "sort"

// A Debugger observes CPU execution, notifying a BreakpointHandler when the
// program counter reaches an execution breakpoint or a store touches a data
// breakpoint. It holds no CPU state of its own.
type Debugger struct {
	handler         BreakpointHandler
	breakpoints     map[uint16]*Breakpoint
	dataBreakpoints map[uint16]*DataBreakpoint
}

// BreakpointHandler receives notifications from an attached Debugger.
type BreakpointHandler interface {
	OnBreakpoint(c *CPU, b *Breakpoint)
	OnDataBreakpoint(c *CPU, b *DataBreakpoint)
}

// Breakpoint halts execution when PC reaches Address.
type Breakpoint struct {
	Address  uint16
	Disabled bool
}

// DataBreakpoint halts execution when a byte is stored to Address. If
// Conditional is set, the break only fires when the stored value equals
// Value.
type DataBreakpoint struct {
	Address     uint16
	Disabled    bool
	Conditional bool
	Value       byte
}

// NewDebugger creates a debugger that reports to handler.
func NewDebugger(handler BreakpointHandler) *Debugger {
	return &Debugger{
		handler:         handler,
		breakpoints:     make(map[uint16]*Breakpoint),
		dataBreakpoints: make(map[uint16]*DataBreakpoint),
	}
}

type byAddr []*Breakpoint

func (a byAddr) Len() int           { return len(a) }
func (a byAddr) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byAddr) Less(i, j int) bool { return a[i].Address < a[j].Address }

// Breakpoint looks up an execution breakpoint by address.
func (d *Debugger) Breakpoint(addr uint16) *Breakpoint {
	return d.breakpoints[addr]
}

// Breakpoints returns all execution breakpoints, ordered by address.
func (d *Debugger) Breakpoints() []*Breakpoint {
	list := make([]*Breakpoint, 0, len(d.breakpoints))
	for _, b := range d.breakpoints {
		list = append(list, b)
	}
	sort.Sort(byAddr(list))
	return list
}

// AddBreakpoint sets an execution breakpoint at addr.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := &Breakpoint{Address: addr}
	d.breakpoints[addr] = b
	return b
}

// RemoveBreakpoint clears the execution breakpoint at addr, if any.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}

type byDataAddr []*DataBreakpoint

func (a byDataAddr) Len() int           { return len(a) }
func (a byDataAddr) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byDataAddr) Less(i, j int) bool { return a[i].Address < a[j].Address }

// DataBreakpoint looks up a data breakpoint by address.
func (d *Debugger) DataBreakpoint(addr uint16) *DataBreakpoint {
	return d.dataBreakpoints[addr]
}

// DataBreakpoints returns all data breakpoints, ordered by address.
func (d *Debugger) DataBreakpoints() []*DataBreakpoint {
	list := make([]*DataBreakpoint, 0, len(d.dataBreakpoints))
	for _, b := range d.dataBreakpoints {
		list = append(list, b)
	}
	sort.Sort(byDataAddr(list))
	return list
}

// AddDataBreakpoint sets an unconditional data breakpoint at addr.
func (d *Debugger) AddDataBreakpoint(addr uint16) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr}
	d.dataBreakpoints[addr] = b
	return b
}

// AddConditionalDataBreakpoint sets a data breakpoint at addr that only
// fires when the stored byte equals value.
func (d *Debugger) AddConditionalDataBreakpoint(addr uint16, value byte) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Conditional: true, Value: value}
	d.dataBreakpoints[addr] = b
	return b
}

// RemoveDataBreakpoint clears the data breakpoint at addr, if any.
func (d *Debugger) RemoveDataBreakpoint(addr uint16) {
	delete(d.dataBreakpoints, addr)
}

func (d *Debugger) onStep(c *CPU, pc uint16) {
	if d.handler == nil {
		return
	}
	if b, ok := d.breakpoints[pc]; ok && !b.Disabled {
		d.handler.OnBreakpoint(c, b)
	}
}

func (d *Debugger) onStore(c *CPU, addr uint16, v byte) {
	if d.handler == nil {
		return
	}
	if b, ok := d.dataBreakpoints[addr]; ok && !b.Disabled {
		if !b.Conditional || b.Value == v {
			d.handler.OnDataBreakpoint(c, b)
		}
	}
}
