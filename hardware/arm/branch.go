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
	"fmt"

	"github.com/jetsetilly/arm5emu/hardware/arm/bitfield"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
)

// B and BL
func (cpu *CPU) executeBranch(opcode uint32) {
	pc := cpu.regs.GetSeen(registers.PC)
	offset := bitfield.SignExt32(opcode&0x00ffffff, 24) << 2

	if opcode&0x01000000 == 0x01000000 {
		cpu.regs.Set(registers.LR, pc-4)
	}

	cpu.regs.SetSeen(registers.PC, pc+offset)
}

// BLX (immediate). always changes to thumb state. bit 24 is the H bit, which
// provides bit 1 of the target address
func (cpu *CPU) executeBLXImmediate(opcode uint32) {
	pc := cpu.regs.GetSeen(registers.PC)
	offset := bitfield.SignExt32(opcode&0x00ffffff, 24) << 2
	if opcode&0x01000000 == 0x01000000 {
		offset |= 0x02
	}

	cpu.regs.Set(registers.LR, pc-4)
	cpu.regs.SetT(true)
	cpu.regs.SetSeen(registers.PC, pc+offset)
}

// SWI. the comment field is only used for logging
func (cpu *CPU) executeSWI(opcode uint32) {
	cpu.raise(exceptions.SoftwareInterrupt, fmt.Sprintf("SWI %#06x at %08x", opcode&0x00ffffff, cpu.executingPC))
}
