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

package bus

// Slave is implemented by every device that can be attached to the bus. The
// address arguments are offsets from the start of the range at which the
// slave was registered.
//
// A slave that cannot service an access of a particular width should return
// an error rather than truncate the access.
type Slave interface {
	// whether the slave can service a read or write of size bytes at the
	// address
	TryRead(addr uint32, size int) bool
	TryWrite(addr uint32, size int) bool

	Read8(addr uint32) (uint8, error)
	Read16(addr uint32) (uint16, error)
	Read32(addr uint32) (uint32, error)
	Read64(addr uint32) (uint64, error)

	Write8(addr uint32, v uint8) error
	Write16(addr uint32, v uint16) error
	Write32(addr uint32, v uint32) error
	Write64(addr uint32, v uint64) error
}

// Unaligned is an optional interface for slaves that natively support
// misaligned accesses. Unaligned accesses to slaves that do not implement the
// interface are decomposed into byte accesses.
type Unaligned interface {
	NativeUnaligned() bool
}

// Master is implemented by devices that initiate bus accesses.
type Master interface {
	MasterID() int
}
