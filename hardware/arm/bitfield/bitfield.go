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

// Package bitfield contains helper functions for the extraction and insertion
// of bit fields and for the integer arithmetic used by the ARM flag logic.
//
// Bit positions greater than 31 are reduced modulo 32. A field length of 32 or
// more selects every bit from the position upwards. A field that extends past
// bit 31 is clipped at bit 31 and does not wrap around to bit 0.
package bitfield

// Mask32 returns a mask with the lower n bits set.
func Mask32(n int) uint32 {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return 0xffffffff
	}
	return (1 << n) - 1
}

// Bit returns true if bit n of v is set.
func Bit(v uint32, n int) bool {
	return v&(1<<(n%32)) != 0
}

// GetField32 returns length bits of val starting at bit pos.
func GetField32(val uint32, pos int, length int) uint32 {
	pos %= 32
	return (val >> pos) & Mask32(length)
}

// SetField32 returns val with length bits starting at bit pos replaced with
// the lower bits of nv.
func SetField32(val uint32, pos int, length int, nv uint32) uint32 {
	pos %= 32
	m := Mask32(length)
	return (val &^ (m << pos)) | ((nv & m) << pos)
}

// SignExt32 treats the lower n bits of v as a signed number and extends it to
// 32 bits. A value of n of 32 or more leaves v unchanged.
func SignExt32(v uint32, n int) uint32 {
	if n >= 32 {
		return v
	}
	if n <= 0 {
		return 0
	}
	sh := uint(32 - n)
	return uint32(int32(v<<sh) >> sh)
}

// SignExt64 treats the lower n bits of v as a signed number and extends it to
// 64 bits. A value of n greater than 64 wraps so that 65 is the same as 1, 66
// the same as 2 and so on.
func SignExt64(v int64, n int) int64 {
	if n <= 0 {
		return 0
	}
	n = ((n - 1) % 64) + 1
	sh := uint(64 - n)
	return (v << sh) >> sh
}

// RotateRight rotates v right by n bits. n is reduced modulo 32.
func RotateRight(v uint32, n uint32) uint32 {
	n %= 32
	return (v >> n) | (v << ((32 - n) % 32))
}
