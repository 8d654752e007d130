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
	"math/bits"

	"github.com/jetsetilly/arm5emu/hardware/arm/bitfield"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
)

// masks used by MSR to decide which bits of a PSR are writable
const (
	psrUserMask  uint32 = 0xf8000000
	psrPrivMask  uint32 = 0x000000df
	psrStateMask uint32 = 0x00000020
)

// the miscellaneous instructions. bits 27 to 23 are 0b00010 and the S bit is
// clear. the rest of the decoding is by bits 7 to 4
func (cpu *CPU) executeMiscellaneous(opcode uint32) {
	op := (opcode >> 21) & 0x03

	if opcode&0x80 == 0x80 {
		// bit 4 is known to be clear because the extension space has been
		// dispatched already
		cpu.executeSignedMultiply(opcode)
		return
	}

	switch (opcode >> 4) & 0x0f {
	case 0b0000:
		if op&0x01 == 0x00 {
			cpu.executeMRS(opcode)
		} else {
			cpu.executeMSR(opcode)
		}
		return
	case 0b0001:
		switch op {
		case 0b01:
			cpu.executeBX(opcode, false)
			return
		case 0b11:
			cpu.executeCLZ(opcode)
			return
		}
	case 0b0010:
		if op == 0b01 {
			// BXJ. there is no jazelle support
			cpu.notImplemented(opcode)
			return
		}
	case 0b0011:
		if op == 0b01 {
			cpu.executeBX(opcode, true)
			return
		}
	case 0b0101:
		cpu.executeSaturating(opcode)
		return
	case 0b0111:
		if op == 0b01 {
			// BKPT is not conditional but we can ignore that because a
			// condition other than AL is unpredictable
			cpu.raise(exceptions.PrefetchAbort, "breakpoint")
			return
		}
	}

	cpu.undefined(opcode)
}

func (cpu *CPU) executeMRS(opcode uint32) {
	rd := int((opcode >> 12) & 0x0f)

	v := cpu.regs.CPSR()
	if opcode&0x00400000 == 0x00400000 {
		spsr, err := cpu.regs.SPSR()
		if err == nil {
			v = spsr
		}
	}

	cpu.regs.SetSeen(rd, v)
}

// executeMSR handles both the immediate and register forms
func (cpu *CPU) executeMSR(opcode uint32) {
	var operand uint32
	if opcode&0x02000000 == 0x02000000 {
		operand = bitfield.RotateRight(opcode&0xff, ((opcode>>8)&0x0f)*2)
	} else {
		operand = cpu.regs.GetSeen(int(opcode & 0x0f))
	}

	var byteMask uint32
	for i := 0; i < 4; i++ {
		if opcode&(1<<(16+i)) != 0 {
			byteMask |= 0xff << (i * 8)
		}
	}

	if opcode&0x00400000 == 0x00000000 {
		var mask uint32
		if cpu.regs.Mode().Privileged() {
			mask = byteMask & (psrUserMask | psrPrivMask)
		} else {
			mask = byteMask & psrUserMask
		}
		v := (cpu.regs.CPSR() &^ mask) | (operand & mask)
		if err := cpu.regs.SetCPSR(v); err != nil {
			cpu.executionError = err
		}
		return
	}

	mask := byteMask & (psrUserMask | psrPrivMask | psrStateMask)
	spsr, err := cpu.regs.SPSR()
	if err != nil {
		// writing the SPSR in a mode without one is unpredictable. we choose
		// to ignore it
		return
	}
	_ = cpu.regs.SetSPSR((spsr &^ mask) | (operand & mask))
}

func (cpu *CPU) executeCLZ(opcode uint32) {
	rd := int((opcode >> 12) & 0x0f)
	rm := int(opcode & 0x0f)
	cpu.regs.SetSeen(rd, uint32(bits.LeadingZeros32(cpu.regs.GetSeen(rm))))
}

// QADD, QSUB, QDADD and QDSUB. the Q flag is set if any saturation occurs
func (cpu *CPU) executeSaturating(opcode uint32) {
	rn := cpu.regs.GetSeen(int((opcode >> 16) & 0x0f))
	rd := int((opcode >> 12) & 0x0f)
	rm := cpu.regs.GetSeen(int(opcode & 0x0f))

	var sat bool
	var result uint32

	op := (opcode >> 21) & 0x03

	if op&0b10 == 0b10 {
		// doubling forms
		rn, sat = bitfield.SaturateAdd(rn, rn)
	}

	var s bool
	if op&0b01 == 0b00 {
		result, s = bitfield.SaturateAdd(rm, rn)
	} else {
		result, s = bitfield.SaturateSub(rm, rn)
	}

	if sat || s {
		cpu.regs.SetQ(true)
	}

	cpu.regs.SetSeen(rd, result)
}

// BX and BLX (register). the T bit is set from bit zero of the target
// address
func (cpu *CPU) executeBX(opcode uint32, link bool) {
	target := cpu.regs.GetSeen(int(opcode & 0x0f))
	if link {
		cpu.regs.Set(registers.LR, cpu.regs.GetSeen(registers.PC)-4)
	}
	cpu.regs.SetT(target&0x01 == 0x01)
	cpu.regs.SetSeen(registers.PC, target&^0x01)
}
