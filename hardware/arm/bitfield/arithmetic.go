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

package bitfield

// CarryFrom returns true if the unsigned addition of a and b overflows 32
// bits.
func CarryFrom(a uint32, b uint32) bool {
	return uint64(a)+uint64(b) > 0xffffffff
}

// BorrowFrom returns true if the unsigned subtraction of b from a requires a
// borrow.
func BorrowFrom(a uint32, b uint32) bool {
	return b > a
}

// OverflowFrom returns true if the signed addition (or subtraction if add is
// false) of a and b overflows.
func OverflowFrom(a uint32, b uint32, add bool) bool {
	if add {
		r := a + b
		return (a^b)&0x80000000 == 0 && (a^r)&0x80000000 != 0
	}
	r := a - b
	return (a^b)&0x80000000 != 0 && (a^r)&0x80000000 != 0
}

// AddWithCarry adds a, b and the carry and returns the result along with the
// carry and overflow status. Each is the combination of two pairwise tests
// rather than a calculation at a wider width.
func AddWithCarry(a uint32, b uint32, carry bool) (uint32, bool, bool) {
	var c uint32
	if carry {
		c = 1
	}
	r1 := a + b
	r := r1 + c
	co := CarryFrom(a, b) || CarryFrom(r1, c)
	v := OverflowFrom(a, b, true) != OverflowFrom(r1, c, true)
	return r, co, v
}

// SubWithCarry subtracts b and the inverse of the carry from a. The carry
// result is the ARM "NOT borrow" value.
func SubWithCarry(a uint32, b uint32, carry bool) (uint32, bool, bool) {
	var nc uint32
	if !carry {
		nc = 1
	}
	r1 := a - b
	r := r1 - nc
	co := !(BorrowFrom(a, b) || BorrowFrom(r1, nc))
	v := OverflowFrom(a, b, false) != OverflowFrom(r1, nc, false)
	return r, co, v
}

// SaturateAdd returns the signed saturated sum of a and b and whether
// saturation occurred.
func SaturateAdd(a uint32, b uint32) (uint32, bool) {
	return saturate(int64(int32(a)) + int64(int32(b)))
}

// SaturateSub returns the signed saturated difference of a and b and whether
// saturation occurred.
func SaturateSub(a uint32, b uint32) (uint32, bool) {
	return saturate(int64(int32(a)) - int64(int32(b)))
}

func saturate(v int64) (uint32, bool) {
	if v > 0x7fffffff {
		return 0x7fffffff, true
	}
	if v < -0x80000000 {
		return 0x80000000, true
	}
	return uint32(v), false
}
