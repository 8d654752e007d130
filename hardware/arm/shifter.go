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
	"github.com/jetsetilly/arm5emu/hardware/arm/bitfield"
)

// shift types in bits 6 and 5 of the opcode
const (
	shiftLSL = 0b00
	shiftLSR = 0b01
	shiftASR = 0b10
	shiftROR = 0b11
)

// shifterOperand returns the shifter operand and the shifter carry out for a
// data processing instruction (addressing mode 1)
func (cpu *CPU) shifterOperand(opcode uint32) (uint32, bool) {
	carry := cpu.regs.C()

	// 32-bit immediate
	if opcode&0x02000000 == 0x02000000 {
		imm := opcode & 0xff
		rotate := ((opcode >> 8) & 0x0f) * 2
		if rotate == 0 {
			return imm, carry
		}
		v := bitfield.RotateRight(imm, rotate)
		return v, v&0x80000000 == 0x80000000
	}

	rm := opcode & 0x0f
	rmVal := cpu.regs.GetSeen(int(rm))
	typ := (opcode >> 5) & 0x03

	// immediate shift
	if opcode&0x10 == 0x00 {
		return shiftImmediate(rmVal, typ, (opcode>>7)&0x1f, carry)
	}

	// register shift. the PC is one instruction further on when it is read
	// after the shift register
	if rm == 15 {
		rmVal += 4
	}
	rs := cpu.regs.GetSeen(int((opcode>>8)&0x0f)) & 0xff
	return shiftRegister(rmVal, typ, rs, carry)
}

// shift by an immediate amount. an amount of zero encodes LSR #32, ASR #32
// and RRX for the LSR, ASR and ROR types
func shiftImmediate(v uint32, typ uint32, amount uint32, carry bool) (uint32, bool) {
	switch typ {
	case shiftLSL:
		if amount == 0 {
			return v, carry
		}
		return v << amount, bitfield.Bit(v, int(32-amount))
	case shiftLSR:
		if amount == 0 {
			return 0, bitfield.Bit(v, 31)
		}
		return v >> amount, bitfield.Bit(v, int(amount-1))
	case shiftASR:
		if amount == 0 {
			if bitfield.Bit(v, 31) {
				return 0xffffffff, true
			}
			return 0, false
		}
		return uint32(int32(v) >> amount), bitfield.Bit(v, int(amount-1))
	case shiftROR:
		if amount == 0 {
			// RRX
			r := v >> 1
			if carry {
				r |= 0x80000000
			}
			return r, bitfield.Bit(v, 0)
		}
		return bitfield.RotateRight(v, amount), bitfield.Bit(v, int(amount-1))
	}
	panic("impossible shift type")
}

// shift by the bottom byte of a register
func shiftRegister(v uint32, typ uint32, amount uint32, carry bool) (uint32, bool) {
	if amount == 0 {
		return v, carry
	}

	switch typ {
	case shiftLSL:
		switch {
		case amount < 32:
			return v << amount, bitfield.Bit(v, int(32-amount))
		case amount == 32:
			return 0, bitfield.Bit(v, 0)
		}
		return 0, false
	case shiftLSR:
		switch {
		case amount < 32:
			return v >> amount, bitfield.Bit(v, int(amount-1))
		case amount == 32:
			return 0, bitfield.Bit(v, 31)
		}
		return 0, false
	case shiftASR:
		if amount < 32 {
			return uint32(int32(v) >> amount), bitfield.Bit(v, int(amount-1))
		}
		if bitfield.Bit(v, 31) {
			return 0xffffffff, true
		}
		return 0, false
	case shiftROR:
		amount &= 0x1f
		if amount == 0 {
			return v, bitfield.Bit(v, 31)
		}
		return bitfield.RotateRight(v, amount), bitfield.Bit(v, int(amount-1))
	}
	panic("impossible shift type")
}
