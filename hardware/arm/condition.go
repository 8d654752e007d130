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

// names of the sixteen condition codes. the 0xf condition is the
// unconditional instruction space in ARMv5
var conditionNames = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
}

// condition returns true if the condition code is satisfied by the current
// state of the CPSR flags. the 0xf condition is never satisfied
func (cpu *CPU) condition(cond uint32) bool {
	switch cond {
	case 0x0:
		return cpu.regs.Z()
	case 0x1:
		return !cpu.regs.Z()
	case 0x2:
		return cpu.regs.C()
	case 0x3:
		return !cpu.regs.C()
	case 0x4:
		return cpu.regs.N()
	case 0x5:
		return !cpu.regs.N()
	case 0x6:
		return cpu.regs.V()
	case 0x7:
		return !cpu.regs.V()
	case 0x8:
		return cpu.regs.C() && !cpu.regs.Z()
	case 0x9:
		return !cpu.regs.C() || cpu.regs.Z()
	case 0xa:
		return cpu.regs.N() == cpu.regs.V()
	case 0xb:
		return cpu.regs.N() != cpu.regs.V()
	case 0xc:
		return !cpu.regs.Z() && cpu.regs.N() == cpu.regs.V()
	case 0xd:
		return cpu.regs.Z() || cpu.regs.N() != cpu.regs.V()
	case 0xe:
		return true
	}
	return false
}
