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

// Package registers implements the ARM register bank. The bank holds the
// sixteen general purpose registers, the CPSR and the banked shadow registers
// of the privileged modes.
//
// Which storage backs register n is decided by a single table lookup indexed
// by the current processor mode and the register number. The FIQ mode banks
// r8 to r14 and the SVC, ABT, UND and IRQ modes bank r13 and r14. Each of the
// exception modes also has a saved program status register (SPSR).
//
// The PC is stored as the address of the instruction being executed. The
// GetSeen() and SetSeen() functions give the view of the registers seen by an
// executing instruction, in which the PC reads as eight bytes ahead of the
// stored value. Writing the PC with SetSeen() marks a jump, which prevents the
// automatic PC increment at the end of the instruction.
package registers
