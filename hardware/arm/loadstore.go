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
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
)

// load/store with a register offset. bit 4 set is the media instruction
// space of later architectures
func (cpu *CPU) executeLoadStoreRegister(opcode uint32) {
	if opcode&0x10 == 0x10 {
		cpu.undefined(opcode)
		return
	}
	cpu.executeLoadStore(opcode)
}

// address returns the address of the transfer and the value to be written
// back to the base register for addressing modes 2 and 3. writeback is false
// if the base register should not be updated
func (cpu *CPU) address(opcode uint32, offset uint32) (addr uint32, wb uint32, writeback bool) {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	w := opcode&0x00200000 == 0x00200000

	base := cpu.regs.GetSeen(int((opcode >> 16) & 0x0f))

	if up {
		wb = base + offset
	} else {
		wb = base - offset
	}

	if pre {
		return wb, wb, w
	}

	// post-indexed addressing always writes back
	return base, wb, true
}

// the value of a register when used as the source of a store. the PC is
// stored as the address of the instruction plus twelve
func (cpu *CPU) storeValue(r int) uint32 {
	if r == registers.PC {
		return cpu.regs.GetSeen(registers.PC) + 4
	}
	return cpu.regs.GetSeen(r)
}

// load the PC from memory. bit zero of the value selects thumb state
func (cpu *CPU) loadPC(v uint32) {
	cpu.regs.SetT(v&0x01 == 0x01)
	cpu.regs.SetSeen(registers.PC, v&^0x01)
}

// executeLoadStore implements LDR, STR, LDRB and STRB along with the user
// mode variants LDRT, STRT, LDRBT and STRBT (addressing mode 2)
//
// access permissions are not checked by the MMU so the user mode variants
// are the same as the normal instructions
func (cpu *CPU) executeLoadStore(opcode uint32) {
	byteAccess := opcode&0x00400000 == 0x00400000
	load := opcode&0x00100000 == 0x00100000
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)

	var offset uint32
	if opcode&0x02000000 == 0x00000000 {
		offset = opcode & 0x0fff
	} else {
		rm := cpu.regs.GetSeen(int(opcode & 0x0f))
		offset, _ = shiftImmediate(rm, (opcode>>5)&0x03, (opcode>>7)&0x1f, cpu.regs.C())
	}

	addr, wb, writeback := cpu.address(opcode, offset)

	if load {
		var v uint32
		if byteAccess {
			b, ok := cpu.read8(addr)
			if !ok {
				return
			}
			v = uint32(b)
		} else {
			w, ok := cpu.read32(addr)
			if !ok {
				return
			}
			// unaligned word loads are rotated so that the addressed byte
			// is in the bottom of the register
			v = bitfield.RotateRight(w, (addr&0x03)*8)
		}

		if writeback {
			cpu.regs.SetSeen(rn, wb)
		}

		if rd == registers.PC {
			cpu.loadPC(v)
		} else {
			cpu.regs.SetSeen(rd, v)
		}
		return
	}

	v := cpu.storeValue(rd)
	if byteAccess {
		if !cpu.write8(addr, uint8(v)) {
			return
		}
	} else {
		if !cpu.write32(addr, v) {
			return
		}
	}

	if writeback {
		cpu.regs.SetSeen(rn, wb)
	}
}

// executeLoadStoreExtra implements LDRH, STRH, LDRSB, LDRSH, LDRD and STRD
// (addressing mode 3)
func (cpu *CPU) executeLoadStoreExtra(opcode uint32) {
	load := opcode&0x00100000 == 0x00100000
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)
	sh := (opcode >> 5) & 0x03

	var offset uint32
	if opcode&0x00400000 == 0x00400000 {
		offset = (opcode>>4)&0xf0 | opcode&0x0f
	} else {
		offset = cpu.regs.GetSeen(int(opcode & 0x0f))
	}

	addr, wb, writeback := cpu.address(opcode, offset)

	// the doubleword transfers are encoded as signed stores
	if !load && sh != 0b01 {
		if rd&0x01 == 0x01 || rd == 14 {
			cpu.undefined(opcode)
			return
		}
		if sh == 0b10 {
			cpu.loadDoubleword(addr, rd, rn, wb, writeback)
		} else {
			cpu.storeDoubleword(addr, rd, rn, wb, writeback)
		}
		return
	}

	if !load {
		// STRH
		if !cpu.write16(addr, uint16(cpu.storeValue(rd))) {
			return
		}
		if writeback {
			cpu.regs.SetSeen(rn, wb)
		}
		return
	}

	var v uint32

	switch sh {
	case 0b01:
		// LDRH
		h, ok := cpu.read16(addr)
		if !ok {
			return
		}
		v = uint32(h)
	case 0b10:
		// LDRSB
		b, ok := cpu.read8(addr)
		if !ok {
			return
		}
		v = bitfield.SignExt32(uint32(b), 8)
	case 0b11:
		// LDRSH
		h, ok := cpu.read16(addr)
		if !ok {
			return
		}
		v = bitfield.SignExt32(uint32(h), 16)
	}

	if writeback {
		cpu.regs.SetSeen(rn, wb)
	}
	cpu.regs.SetSeen(rd, v)
}

// LDRD. both words are read before any register is changed
func (cpu *CPU) loadDoubleword(addr uint32, rd int, rn int, wb uint32, writeback bool) {
	lo, ok := cpu.read32(addr)
	if !ok {
		return
	}
	hi, ok := cpu.read32(addr + 4)
	if !ok {
		return
	}

	if writeback {
		cpu.regs.SetSeen(rn, wb)
	}
	cpu.regs.SetSeen(rd, lo)
	cpu.regs.SetSeen(rd+1, hi)
}

// STRD. both words are checked before either is written
func (cpu *CPU) storeDoubleword(addr uint32, rd int, rn int, wb uint32, writeback bool) {
	if !cpu.probeWrite32(addr) || !cpu.probeWrite32(addr+4) {
		return
	}
	if !cpu.write32(addr, cpu.storeValue(rd)) {
		return
	}
	if !cpu.write32(addr+4, cpu.storeValue(rd+1)) {
		return
	}
	if writeback {
		cpu.regs.SetSeen(rn, wb)
	}
}

// SWP and SWPB
func (cpu *CPU) executeSwap(opcode uint32) {
	byteAccess := opcode&0x00400000 == 0x00400000
	addr := cpu.regs.GetSeen(int((opcode >> 16) & 0x0f))
	rd := int((opcode >> 12) & 0x0f)
	v := cpu.regs.GetSeen(int(opcode & 0x0f))

	if byteAccess {
		b, ok := cpu.read8(addr)
		if !ok {
			return
		}
		if !cpu.write8(addr, uint8(v)) {
			return
		}
		cpu.regs.SetSeen(rd, uint32(b))
		return
	}

	w, ok := cpu.read32(addr)
	if !ok {
		return
	}
	if !cpu.write32(addr, v) {
		return
	}
	cpu.regs.SetSeen(rd, bitfield.RotateRight(w, (addr&0x03)*8))
}
