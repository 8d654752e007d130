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
	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm/coproc"
	"github.com/jetsetilly/arm5emu/hardware/arm/cp15"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
)

// Coprocessor is implemented by every coprocessor that can be attached to the
// CPU with AttachCoprocessor().
type Coprocessor = coproc.Coprocessor

// LDC, STC, MCRR and MRRC. none of the attached coprocessors support data
// transfers
func (cpu *CPU) executeCoprocTransfer(opcode uint32) {
	cp := int((opcode >> 8) & 0x0f)
	if cpu.coprocs[cp] == nil || cp == cp15.Number {
		cpu.undefined(opcode)
		return
	}
	cpu.notImplemented(opcode)
}

// CDP, MCR and MRC
func (cpu *CPU) executeCoprocRegister(opcode uint32) {
	cp := int((opcode >> 8) & 0x0f)
	c := cpu.coprocs[cp]

	if c == nil {
		cpu.undefined(opcode)
		return
	}

	// CDP
	if opcode&0x10 == 0x00 {
		if cp == cp15.Number {
			cpu.undefined(opcode)
			return
		}
		cpu.notImplemented(opcode)
		return
	}

	// the system control coprocessor is only accessible from privileged
	// modes
	if cp == cp15.Number && !cpu.regs.Mode().Privileged() {
		cpu.undefined(opcode)
		return
	}

	op1 := (opcode >> 21) & 0x07
	crn := (opcode >> 16) & 0x0f
	rd := int((opcode >> 12) & 0x0f)
	op2 := (opcode >> 5) & 0x07
	crm := opcode & 0x0f

	id := coproc.RegID(crn, op1, crm, op2)
	if !c.ValidCRegNumber(id) {
		cpu.executionError = curated.Errorf(UnimplementedCoprocReg, cp, coproc.RegString(id), cpu.executingPC)
		return
	}

	// MRC
	if opcode&0x00100000 == 0x00100000 {
		v := c.GetCReg(id)
		if rd == registers.PC {
			// the top four bits of the value are copied to the NZCV flags
			cpsr := cpu.regs.CPSR()
			cpsr = (cpsr &^ registers.FlagsNZCV) | (v & registers.FlagsNZCV)
			if err := cpu.regs.SetCPSR(cpsr); err != nil {
				cpu.executionError = err
			}
			return
		}
		cpu.regs.SetSeen(rd, v)
		return
	}

	// MCR
	c.SetCReg(id, cpu.regs.GetSeen(rd))
}
