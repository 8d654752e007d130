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

// data processing opcodes in bits 24 to 21
const (
	opAND = iota
	opEOR
	opSUB
	opRSB
	opADD
	opADC
	opSBC
	opRSC
	opTST
	opTEQ
	opCMP
	opCMN
	opORR
	opMOV
	opBIC
	opMVN
)

// data processing with a register operand. the miscellaneous instructions
// and the extension space have already been filtered out
func (cpu *CPU) executeDataProcessingRegister(opcode uint32) {
	cpu.executeDataProcessing(opcode)
}

// executeDataProcessing implements the sixteen data processing instructions
// for all forms of addressing mode 1
func (cpu *CPU) executeDataProcessing(opcode uint32) {
	op := (opcode >> 21) & 0x0f
	setFlags := opcode&0x00100000 == 0x00100000
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)

	shifter, shifterCarry := cpu.shifterOperand(opcode)

	a := cpu.regs.GetSeen(rn)
	if rn == registers.PC && opcode&0x02000010 == 0x00000010 {
		// register shifted by register
		a += 4
	}

	var result uint32
	carry := cpu.regs.C()
	overflow := cpu.regs.V()
	logical := false
	write := true

	switch op {
	case opAND:
		result = a & shifter
		logical = true
	case opEOR:
		result = a ^ shifter
		logical = true
	case opSUB:
		result, carry, overflow = bitfield.SubWithCarry(a, shifter, true)
	case opRSB:
		result, carry, overflow = bitfield.SubWithCarry(shifter, a, true)
	case opADD:
		result, carry, overflow = bitfield.AddWithCarry(a, shifter, false)
	case opADC:
		result, carry, overflow = bitfield.AddWithCarry(a, shifter, cpu.regs.C())
	case opSBC:
		result, carry, overflow = bitfield.SubWithCarry(a, shifter, cpu.regs.C())
	case opRSC:
		result, carry, overflow = bitfield.SubWithCarry(shifter, a, cpu.regs.C())
	case opTST:
		result = a & shifter
		logical = true
		write = false
	case opTEQ:
		result = a ^ shifter
		logical = true
		write = false
	case opCMP:
		result, carry, overflow = bitfield.SubWithCarry(a, shifter, true)
		write = false
	case opCMN:
		result, carry, overflow = bitfield.AddWithCarry(a, shifter, false)
		write = false
	case opORR:
		result = a | shifter
		logical = true
	case opMOV:
		result = shifter
		logical = true
	case opBIC:
		result = a &^ shifter
		logical = true
	case opMVN:
		result = ^shifter
		logical = true
	}

	if logical {
		carry = shifterCarry
	}

	if setFlags {
		if rd == registers.PC && write {
			// the SPSR of the current mode is copied to the CPSR. the
			// flags are not set from the result
			if spsr, err := cpu.regs.SPSR(); err == nil {
				if err := cpu.regs.SetCPSR(spsr); err != nil {
					cpu.executionError = err
					return
				}
			}
		} else {
			cpu.regs.SetNZ(result)
			cpu.regs.SetC(carry)
			cpu.regs.SetV(overflow)
		}
	}

	if write {
		if rd == registers.PC {
			// the CPSR may have been restored to thumb state by an
			// exception return
			if cpu.regs.T() {
				result &^= 0x01
			} else {
				result &^= 0x03
			}
		}
		cpu.regs.SetSeen(rd, result)
	}
}
