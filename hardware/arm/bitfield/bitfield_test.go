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

package bitfield_test

import (
	"math/rand"
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/arm/bitfield"
	"github.com/jetsetilly/arm5emu/test"
)

func TestFieldVectors(t *testing.T) {
	test.ExpectEquality(t, bitfield.GetField32(0x80de4d00, 10, 5), 0x13)
	test.ExpectEquality(t, bitfield.SetField32(0x70cf4300, 18, 5, 0xe2), 0x708b4300)

	// position reduces modulo 32 and long lengths mean the full field
	test.ExpectEquality(t, bitfield.GetField32(0x80de4d00, 42, 5), 0x13)
	test.ExpectEquality(t, bitfield.GetField32(0x80de4d00, 0, 32), 0x80de4d00)
	test.ExpectEquality(t, bitfield.GetField32(0x80de4d00, 0, 40), 0x80de4d00)
	test.ExpectEquality(t, bitfield.GetField32(0x80de4d00, 4, 32), 0x080de4d0)
	test.ExpectEquality(t, bitfield.GetField32(0xffffffff, 3, 0), 0)
}

func TestFieldRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x2600))

	for i := 0; i < 10000; i++ {
		val := rnd.Uint32()
		nv := rnd.Uint32()
		pos := rnd.Intn(32)
		length := rnd.Intn(33)

		get := bitfield.GetField32(val, pos, length)
		test.ExpectEquality(t, bitfield.SetField32(val, pos, length, get), val, val, pos, length)

		// a field that overflows the word keeps only the bits up to bit 31
		set := bitfield.SetField32(val, pos, length, nv)
		if pos+length <= 32 {
			test.ExpectEquality(t, bitfield.GetField32(set, pos, length), nv&bitfield.Mask32(length), val, pos, length)
		} else {
			test.ExpectEquality(t, bitfield.GetField32(set, pos, length), nv&bitfield.Mask32(32-pos), val, pos, length)
		}

		// bits below the field are never changed
		test.ExpectEquality(t, set&bitfield.Mask32(pos), val&bitfield.Mask32(pos), val, pos, length)
	}
}

func TestFieldOverflow(t *testing.T) {
	// a 16 bit field at bit 24 is clipped to 8 bits
	test.ExpectEquality(t, bitfield.SetField32(0x00000000, 24, 16, 0xabcd), 0xcd000000)
	test.ExpectEquality(t, bitfield.GetField32(0xcd123456, 24, 16), 0xcd)
	test.ExpectEquality(t, bitfield.SetField32(0x12345678, 28, 8, 0xff), 0xf2345678)

	// the full word from bit 0
	test.ExpectEquality(t, bitfield.SetField32(0x12345678, 0, 40, 0xdeadbeef), 0xdeadbeef)
	test.ExpectEquality(t, bitfield.GetField32(0xdeadbeef, 32, 32), 0xdeadbeef)
}

func TestSignExtension(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x2600))
	for i := 0; i < 1000; i++ {
		v := rnd.Uint32()
		test.ExpectEquality(t, bitfield.SignExt32(v, 32), v)
	}

	test.ExpectEquality(t, bitfield.SignExt32(0x00800000, 24), 0xff800000)
	test.ExpectEquality(t, bitfield.SignExt32(0x007fffff, 24), 0x007fffff)
	test.ExpectEquality(t, bitfield.SignExt32(0x80, 8), 0xffffff80)
	test.ExpectEquality(t, bitfield.SignExt32(0x1, 1), 0xffffffff)

	test.ExpectEquality(t, bitfield.SignExt64(0xe, 66), int64(-2))
	test.ExpectEquality(t, bitfield.SignExt64(0xe, 2), int64(-2))
	test.ExpectEquality(t, bitfield.SignExt64(0xe, 65), int64(0))
	test.ExpectEquality(t, bitfield.SignExt64(0xf, 65), int64(-1))
	test.ExpectEquality(t, bitfield.SignExt64(-5, 64), int64(-5))
	test.ExpectEquality(t, bitfield.SignExt64(0xe, 4), int64(-2))
	test.ExpectEquality(t, bitfield.SignExt64(0xe, 5), int64(14))
}

func TestRotateRight(t *testing.T) {
	test.ExpectEquality(t, bitfield.RotateRight(0x000000ff, 8), 0xff000000)
	test.ExpectEquality(t, bitfield.RotateRight(0x12345678, 0), 0x12345678)
	test.ExpectEquality(t, bitfield.RotateRight(0x12345678, 32), 0x12345678)
	test.ExpectEquality(t, bitfield.RotateRight(0x00000001, 1), 0x80000000)
}

func TestArithmetic(t *testing.T) {
	test.ExpectSuccess(t, bitfield.CarryFrom(0x80000000, 0x80000000))
	test.ExpectFailure(t, bitfield.CarryFrom(0x7fffffff, 0x80000000))
	test.ExpectSuccess(t, bitfield.OverflowFrom(0x7fffffff, 1, true))
	test.ExpectFailure(t, bitfield.OverflowFrom(0xffffffff, 1, true))
	test.ExpectSuccess(t, bitfield.OverflowFrom(0x80000000, 1, false))
	test.ExpectFailure(t, bitfield.OverflowFrom(0, 1, false))
	test.ExpectSuccess(t, bitfield.BorrowFrom(0, 1))
	test.ExpectFailure(t, bitfield.BorrowFrom(1, 1))
}

func TestWithCarry(t *testing.T) {
	r, c, v := bitfield.AddWithCarry(0xffffffff, 0, true)
	test.ExpectEquality(t, r, 0)
	test.ExpectSuccess(t, c)
	test.ExpectFailure(t, v)

	r, c, v = bitfield.AddWithCarry(0x7fffffff, 0, true)
	test.ExpectEquality(t, r, 0x80000000)
	test.ExpectFailure(t, c)
	test.ExpectSuccess(t, v)

	// 0 - 0 - NOT(carry) with carry clear is 0xffffffff with a borrow
	r, c, v = bitfield.SubWithCarry(0, 0, false)
	test.ExpectEquality(t, r, 0xffffffff)
	test.ExpectFailure(t, c)
	test.ExpectFailure(t, v)

	r, c, v = bitfield.SubWithCarry(5, 3, true)
	test.ExpectEquality(t, r, 2)
	test.ExpectSuccess(t, c)
	test.ExpectFailure(t, v)

	r, c, v = bitfield.SubWithCarry(0x80000000, 0, false)
	test.ExpectEquality(t, r, 0x7fffffff)
	test.ExpectSuccess(t, c)
	test.ExpectSuccess(t, v)
}

func TestSaturation(t *testing.T) {
	r, q := bitfield.SaturateAdd(0x7fffffff, 1)
	test.ExpectEquality(t, r, 0x7fffffff)
	test.ExpectSuccess(t, q)

	r, q = bitfield.SaturateSub(0x80000000, 1)
	test.ExpectEquality(t, r, 0x80000000)
	test.ExpectSuccess(t, q)

	r, q = bitfield.SaturateAdd(2, 3)
	test.ExpectEquality(t, r, 5)
	test.ExpectFailure(t, q)
}
