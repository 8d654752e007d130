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

package arm

import (
	"testing"

	"github.com/jetsetilly/arm5emu/test"
)

// classify bits 27 to 20 of an opcode using the instruction set encoding
// table
func classify(bits uint32) opGroup {
	op := bits >> 5
	opx := (bits >> 3) & 0x03
	s := bits&0x01 == 0x01
	r := (bits>>1)&0x01 == 0x01

	switch op {
	case 0b000:
		if opx == 0b10 && !s {
			return groupMiscellaneous
		}
		return groupDataProcessing
	case 0b001:
		if opx == 0b10 && !s {
			if r {
				return groupMSRImmediate
			}
			return groupUndefined
		}
		return groupDataProcessingImmediate
	case 0b010:
		return groupLoadStoreImmediate
	case 0b011:
		return groupLoadStoreRegister
	case 0b100:
		return groupBlockTransfer
	case 0b101:
		return groupBranch
	case 0b110:
		return groupCoprocTransfer
	}
	if bits&0x10 == 0x00 {
		return groupCoprocRegister
	}
	return groupSWI
}

func TestOptable(t *testing.T) {
	for i := range optable {
		test.ExpectEquality(t, optable[i].group, classify(uint32(i)), i)
		test.ExpectSuccess(t, optable[i].execute != nil, i)
	}
}

func TestShiftImmediate(t *testing.T) {
	type shift struct {
		v      uint32
		typ    uint32
		amount uint32
		carry  bool
		result uint32
		carOut bool
	}

	tests := []shift{
		{v: 0x80000001, typ: shiftLSL, amount: 0, carry: true, result: 0x80000001, carOut: true},
		{v: 0x80000001, typ: shiftLSL, amount: 1, carry: false, result: 0x00000002, carOut: true},
		{v: 0x00000003, typ: shiftLSR, amount: 1, carry: false, result: 0x00000001, carOut: true},
		{v: 0x80000000, typ: shiftLSR, amount: 0, carry: false, result: 0x00000000, carOut: true},
		{v: 0x80000000, typ: shiftASR, amount: 4, carry: false, result: 0xf8000000, carOut: false},
		{v: 0x80000000, typ: shiftASR, amount: 0, carry: false, result: 0xffffffff, carOut: true},
		{v: 0x7fffffff, typ: shiftASR, amount: 0, carry: true, result: 0x00000000, carOut: false},
		{v: 0x00000011, typ: shiftROR, amount: 4, carry: false, result: 0x10000001, carOut: false},
		{v: 0x00000001, typ: shiftROR, amount: 0, carry: true, result: 0x80000000, carOut: true},
		{v: 0x00000002, typ: shiftROR, amount: 0, carry: false, result: 0x00000001, carOut: false},
	}

	for i, s := range tests {
		r, c := shiftImmediate(s.v, s.typ, s.amount, s.carry)
		test.ExpectEquality(t, r, s.result, i)
		test.ExpectEquality(t, c, s.carOut, i)
	}
}

func TestShiftRegister(t *testing.T) {
	type shift struct {
		v      uint32
		typ    uint32
		amount uint32
		carry  bool
		result uint32
		carOut bool
	}

	tests := []shift{
		{v: 0x00000001, typ: shiftLSL, amount: 0, carry: true, result: 0x00000001, carOut: true},
		{v: 0x00000001, typ: shiftLSL, amount: 32, carry: false, result: 0x00000000, carOut: true},
		{v: 0xffffffff, typ: shiftLSL, amount: 33, carry: true, result: 0x00000000, carOut: false},
		{v: 0x80000000, typ: shiftLSR, amount: 32, carry: false, result: 0x00000000, carOut: true},
		{v: 0x80000000, typ: shiftLSR, amount: 40, carry: true, result: 0x00000000, carOut: false},
		{v: 0x80000000, typ: shiftASR, amount: 40, carry: false, result: 0xffffffff, carOut: true},
		{v: 0x80000001, typ: shiftROR, amount: 32, carry: false, result: 0x80000001, carOut: true},
		{v: 0x00000003, typ: shiftROR, amount: 33, carry: false, result: 0x80000001, carOut: true},
	}

	for i, s := range tests {
		r, c := shiftRegister(s.v, s.typ, s.amount, s.carry)
		test.ExpectEquality(t, r, s.result, i)
		test.ExpectEquality(t, c, s.carOut, i)
	}
}
