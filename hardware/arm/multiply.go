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

// the extension space. bits 27 to 25 are zero and bits 7 and 4 are set
func (cpu *CPU) executeExtension(opcode uint32) {
	if opcode&0x60 != 0x00 {
		cpu.executeLoadStoreExtra(opcode)
		return
	}

	switch (opcode >> 23) & 0x03 {
	case 0b00:
		if opcode&0x00400000 == 0x00000000 {
			cpu.executeMultiply(opcode)
			return
		}
	case 0b01:
		cpu.executeMultiplyLong(opcode)
		return
	case 0b10:
		if opcode&0x00300000 == 0x00000000 {
			cpu.executeSwap(opcode)
			return
		}
	}

	// UMAAL, LDREX and STREX are from later architectures
	cpu.undefined(opcode)
}

// MUL and MLA
func (cpu *CPU) executeMultiply(opcode uint32) {
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rd := int((opcode >> 16) & 0x0f)
	rn := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)

	result := cpu.regs.GetSeen(rm) * cpu.regs.GetSeen(rs)
	if accumulate {
		result += cpu.regs.GetSeen(rn)
	}

	// the carry flag is unaffected in ARMv5
	if setFlags {
		cpu.regs.SetNZ(result)
	}

	cpu.regs.SetSeen(rd, result)
}

// UMULL, UMLAL, SMULL and SMLAL
func (cpu *CPU) executeMultiplyLong(opcode uint32) {
	signed := opcode&0x00400000 == 0x00400000
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rdHi := int((opcode >> 16) & 0x0f)
	rdLo := int((opcode >> 12) & 0x0f)
	rs := cpu.regs.GetSeen(int((opcode >> 8) & 0x0f))
	rm := cpu.regs.GetSeen(int(opcode & 0x0f))

	var result uint64
	if signed {
		result = uint64(int64(int32(rm)) * int64(int32(rs)))
	} else {
		result = uint64(rm) * uint64(rs)
	}

	if accumulate {
		result += uint64(cpu.regs.GetSeen(rdHi))<<32 | uint64(cpu.regs.GetSeen(rdLo))
	}

	if setFlags {
		cpu.regs.SetN(result&0x8000000000000000 == 0x8000000000000000)
		cpu.regs.SetZ(result == 0)
	}

	cpu.regs.SetSeen(rdLo, uint32(result))
	cpu.regs.SetSeen(rdHi, uint32(result>>32))
}

// select the top or bottom halfword of v and sign extend it
func halfword(v uint32, top bool) int32 {
	if top {
		return int32(v) >> 16
	}
	return int32(bitfield.SignExt32(v&0xffff, 16))
}

// SMLAxy, SMLAWy, SMULWy, SMLALxy and SMULxy
func (cpu *CPU) executeSignedMultiply(opcode uint32) {
	rd := int((opcode >> 16) & 0x0f)
	rn := int((opcode >> 12) & 0x0f)
	rs := cpu.regs.GetSeen(int((opcode >> 8) & 0x0f))
	rm := cpu.regs.GetSeen(int(opcode & 0x0f))
	x := opcode&0x20 == 0x20
	y := opcode&0x40 == 0x40

	switch (opcode >> 21) & 0x03 {
	case 0b00:
		// SMLAxy
		product := uint32(halfword(rm, x) * halfword(rs, y))
		result, q := addOverflow(product, cpu.regs.GetSeen(rn))
		if q {
			cpu.regs.SetQ(true)
		}
		cpu.regs.SetSeen(rd, result)
	case 0b01:
		product := uint32((int64(int32(rm)) * int64(halfword(rs, y))) >> 16)
		if x {
			// SMULWy
			cpu.regs.SetSeen(rd, product)
			return
		}
		// SMLAWy
		result, q := addOverflow(product, cpu.regs.GetSeen(rn))
		if q {
			cpu.regs.SetQ(true)
		}
		cpu.regs.SetSeen(rd, result)
	case 0b10:
		// SMLALxy. rn is RdLo and rd is RdHi
		product := int64(halfword(rm, x) * halfword(rs, y))
		acc := int64(uint64(cpu.regs.GetSeen(rd))<<32 | uint64(cpu.regs.GetSeen(rn)))
		result := uint64(acc + product)
		cpu.regs.SetSeen(rn, uint32(result))
		cpu.regs.SetSeen(rd, uint32(result>>32))
	case 0b11:
		// SMULxy
		cpu.regs.SetSeen(rd, uint32(halfword(rm, x)*halfword(rs, y)))
	}
}

// signed addition returning true on overflow. the result wraps
func addOverflow(a uint32, b uint32) (uint32, bool) {
	return a + b, bitfield.OverflowFrom(a, b, true)
}
