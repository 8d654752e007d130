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

// Package coproc defines the contract between the CPU and its coprocessors.
// The CPU resolves the coprocessor register addressed by an MCR or MRC
// instruction to a single identifier with RegID() and validates it with
// ValidCRegNumber() before transferring the value.
package coproc

import "fmt"

// Coprocessor is implemented by every coprocessor attached to a CPU.
type Coprocessor interface {
	ValidCRegNumber(id uint32) bool
	GetCReg(id uint32) uint32
	SetCReg(id uint32, v uint32)
}

// RegID returns the identifier of the coprocessor register selected by the
// CRn, opcode1, CRm and opcode2 fields of a coprocessor register transfer.
func RegID(crn uint32, op1 uint32, crm uint32, op2 uint32) uint32 {
	return (crn&0x0f)<<10 | (op1&0x07)<<7 | (crm&0x0f)<<3 | (op2 & 0x07)
}

// RegString returns the register identifier in the conventional
// "c1, 0, c0, 0" form.
func RegString(id uint32) string {
	return fmt.Sprintf("c%d, %d, c%d, %d", (id>>10)&0x0f, (id>>7)&0x07, (id>>3)&0x0f, id&0x07)
}
