// This file is part of arm5emu.
//
// arm5emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm5emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm5emu.  If not, see <https://www.gnu.org/licenses/>.

package memory

import (
	"fmt"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/bus"
)

// Sentinal error patterns.
const (
	InvalidSize = "memory: invalid size (%d)"
	LoadOverrun = "memory: load of %d bytes at %08x overruns %d bytes of RAM"
)

// RAM is a bus slave backed by word storage. Sub-word accesses read or modify
// the word containing the addressed byte, selecting the lane little-endian.
//
// Accesses must be aligned to their natural width. A misaligned access fails
// TryRead() or TryWrite(), leaving the bus to decompose unaligned requests into
// byte accesses. RAM does no locking of its own and relies on the bus for
// exclusion.
type RAM struct {
	words []uint32
	size  uint32
}

// NewRAM is the preferred method of initialisation for the RAM type. The size
// is in bytes and must be a non-zero multiple of eight.
func NewRAM(size uint32) (*RAM, error) {
	if size == 0 || size&0x07 != 0 {
		return nil, curated.Errorf(InvalidSize, size)
	}
	return &RAM{
		words: make([]uint32, size>>2),
		size:  size,
	}, nil
}

func (r *RAM) String() string {
	return fmt.Sprintf("RAM (%d bytes)", r.size)
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() uint32 {
	return r.size
}

// TryRead implements the bus.Slave interface.
func (r *RAM) TryRead(addr uint32, size int) bool {
	return r.valid(addr, size)
}

// TryWrite implements the bus.Slave interface.
func (r *RAM) TryWrite(addr uint32, size int) bool {
	return r.valid(addr, size)
}

func (r *RAM) valid(addr uint32, size int) bool {
	switch size {
	case 1, 2, 4, 8:
	default:
		return false
	}
	if addr&uint32(size-1) != 0 {
		return false
	}
	return uint64(addr)+uint64(size) <= uint64(r.size)
}

// Read8 implements the bus.Slave interface.
func (r *RAM) Read8(addr uint32) (uint8, error) {
	return uint8(bus.ReadMasked(addr, uint64(r.words[addr>>2]), 32, 8)), nil
}

// Read16 implements the bus.Slave interface.
func (r *RAM) Read16(addr uint32) (uint16, error) {
	return uint16(bus.ReadMasked(addr, uint64(r.words[addr>>2]), 32, 16)), nil
}

// Read32 implements the bus.Slave interface.
func (r *RAM) Read32(addr uint32) (uint32, error) {
	return r.words[addr>>2], nil
}

// Read64 implements the bus.Slave interface.
func (r *RAM) Read64(addr uint32) (uint64, error) {
	i := addr >> 2
	return uint64(r.words[i]) | uint64(r.words[i+1])<<32, nil
}

// Write8 implements the bus.Slave interface.
func (r *RAM) Write8(addr uint32, v uint8) error {
	i := addr >> 2
	r.words[i] = uint32(bus.WriteMasked(addr, uint64(r.words[i]), uint64(v), 32, 8))
	return nil
}

// Write16 implements the bus.Slave interface.
func (r *RAM) Write16(addr uint32, v uint16) error {
	i := addr >> 2
	r.words[i] = uint32(bus.WriteMasked(addr, uint64(r.words[i]), uint64(v), 32, 16))
	return nil
}

// Write32 implements the bus.Slave interface.
func (r *RAM) Write32(addr uint32, v uint32) error {
	r.words[addr>>2] = v
	return nil
}

// Write64 implements the bus.Slave interface.
func (r *RAM) Write64(addr uint32, v uint64) error {
	i := addr >> 2
	r.words[i] = uint32(v)
	r.words[i+1] = uint32(v >> 32)
	return nil
}

// Load copies data into RAM starting at the offset. The data must fit
// entirely.
func (r *RAM) Load(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(r.size) {
		return curated.Errorf(LoadOverrun, len(data), offset, r.size)
	}
	for i, d := range data {
		_ = r.Write8(offset+uint32(i), d)
	}
	return nil
}
