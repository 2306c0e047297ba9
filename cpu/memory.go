// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// RAMSize is the size, in bytes, of the RAM mount installed by NewMachineBus.
const RAMSize = 8 * 1024

// A Reader returns the byte stored at a mount-relative offset.
type Reader func(offset uint16) byte

// A Writer stores a byte at a mount-relative offset.
type Writer func(offset uint16, v byte)

// A mount is a contiguous region of the 16-bit address space owned by one
// device. Reads and writes to addresses in [start,end] are dispatched to
// the device using an address relative to start.
type mount struct {
	start, end uint16
	read       Reader
	write      Writer
}

func (m *mount) contains(addr uint16) bool {
	return addr >= m.start && addr <= m.end
}

func (m *mount) overlaps(start, end uint16) bool {
	return start <= m.end && end >= m.start
}

// Bus routes reads and writes across the 16-bit address space to whichever
// mount owns the address. It is the memory abstraction the CPU is bound
// to; there is no bus-level state beyond the ordered list of mounts.
type Bus struct {
	mounts []mount
}

// NewBus creates an empty memory bus with no mounts.
func NewBus() *Bus {
	return &Bus{}
}

// NewMachineBus creates a bus with the CPU's default 8 KiB RAM mount
// installed at [0x0000, 0x1FFF].
func NewMachineBus() *Bus {
	b := NewBus()
	b.MountRAM(0x0000, RAMSize)
	return b
}

// Mount installs a device spanning [start,end] (inclusive) on the bus. It
// is an error to mount a region that intersects any existing mount.
func (b *Bus) Mount(start, end uint16, read Reader, write Writer) error {
	if end < start {
		return &OverlapError{Start: start, End: end}
	}
	for i := range b.mounts {
		if b.mounts[i].overlaps(start, end) {
			return &OverlapError{
				Start: start, End: end,
				ExistStart: b.mounts[i].start, ExistEnd: b.mounts[i].end,
			}
		}
	}
	b.mounts = append(b.mounts, mount{start: start, end: end, read: read, write: write})
	return nil
}

// MountRAM installs a plain read/write RAM device of 'size' bytes starting
// at 'start'.
func (b *Bus) MountRAM(start uint16, size int) error {
	ram := make([]byte, size)
	end := start + uint16(size) - 1
	return b.Mount(start, end,
		func(offset uint16) byte { return ram[offset] },
		func(offset uint16, v byte) { ram[offset] = v },
	)
}

// MountROM installs a read-only device backed by a copy of 'data' starting
// at 'start'. Writes to a ROM mount are silently discarded.
func (b *Bus) MountROM(start uint16, data []byte) error {
	end := start + uint16(len(data)) - 1
	rom := make([]byte, len(data))
	copy(rom, data)
	return b.Mount(start, end,
		func(offset uint16) byte { return rom[offset] },
		func(offset uint16, v byte) {},
	)
}

func (b *Bus) find(addr uint16) *mount {
	for i := range b.mounts {
		if b.mounts[i].contains(addr) {
			return &b.mounts[i]
		}
	}
	return nil
}

// Read returns the byte at 'addr'. It fails if no mount owns the address.
func (b *Bus) Read(addr uint16) (byte, error) {
	m := b.find(addr)
	if m == nil {
		return 0, &AddressError{Op: "read", Addr: addr}
	}
	return m.read(addr - m.start), nil
}

// Write stores 'v' at 'addr'. It fails if no mount owns the address.
func (b *Bus) Write(addr uint16, v byte) error {
	m := b.find(addr)
	if m == nil {
		return &AddressError{Op: "write", Addr: addr}
	}
	m.write(addr-m.start, v)
	return nil
}

// ReadWord reads a little-endian 16-bit value from 'addr' and 'addr'+1.
// The two bytes are read low then high, as separate bus transactions, so
// side-effectful devices observe them in that order.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	low, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	high, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return word(low, high), nil
}
