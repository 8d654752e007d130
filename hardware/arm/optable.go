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

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
)

// opGroup is the broad classification of an instruction by bits 27 to 20 of
// the opcode
type opGroup int

const (
	groupDataProcessing opGroup = iota
	groupMiscellaneous
	groupDataProcessingImmediate
	groupMSRImmediate
	groupUndefined
	groupLoadStoreImmediate
	groupLoadStoreRegister
	groupBlockTransfer
	groupBranch
	groupCoprocTransfer
	groupCoprocRegister
	groupSWI
)

func (g opGroup) String() string {
	switch g {
	case groupDataProcessing:
		return "data processing"
	case groupMiscellaneous:
		return "miscellaneous"
	case groupDataProcessingImmediate:
		return "data processing immediate"
	case groupMSRImmediate:
		return "MSR immediate"
	case groupUndefined:
		return "undefined"
	case groupLoadStoreImmediate:
		return "load/store immediate"
	case groupLoadStoreRegister:
		return "load/store register"
	case groupBlockTransfer:
		return "block transfer"
	case groupBranch:
		return "branch"
	case groupCoprocTransfer:
		return "coprocessor transfer"
	case groupCoprocRegister:
		return "coprocessor register"
	case groupSWI:
		return "software interrupt"
	}
	return "unknown group"
}

// executeFunction executes a single instruction. the condition code has
// already been checked
type executeFunction func(cpu *CPU, opcode uint32)

type opEntry struct {
	group   opGroup
	execute executeFunction
}

// optable is indexed by bits 27 to 20 of the opcode
var optable = buildOptable()

func buildOptable() [256]opEntry {
	var t [256]opEntry

	for i := range t {
		switch i >> 6 {
		case 0b00:
			if i&0x20 == 0x00 {
				if i&0x19 == 0x10 {
					// opcode 10xx with the S bit clear
					t[i] = opEntry{group: groupMiscellaneous, execute: (*CPU).executeMiscellaneous}
				} else {
					t[i] = opEntry{group: groupDataProcessing, execute: (*CPU).executeDataProcessingRegister}
				}
			} else {
				switch i & 0x1b {
				case 0x10:
					t[i] = opEntry{group: groupUndefined, execute: (*CPU).executeUndefined}
				case 0x12:
					t[i] = opEntry{group: groupMSRImmediate, execute: (*CPU).executeMSR}
				default:
					t[i] = opEntry{group: groupDataProcessingImmediate, execute: (*CPU).executeDataProcessing}
				}
			}
		case 0b01:
			if i&0x20 == 0x00 {
				t[i] = opEntry{group: groupLoadStoreImmediate, execute: (*CPU).executeLoadStore}
			} else {
				t[i] = opEntry{group: groupLoadStoreRegister, execute: (*CPU).executeLoadStoreRegister}
			}
		case 0b10:
			if i&0x20 == 0x00 {
				t[i] = opEntry{group: groupBlockTransfer, execute: (*CPU).executeBlockTransfer}
			} else {
				t[i] = opEntry{group: groupBranch, execute: (*CPU).executeBranch}
			}
		case 0b11:
			if i&0x20 == 0x00 {
				t[i] = opEntry{group: groupCoprocTransfer, execute: (*CPU).executeCoprocTransfer}
			} else if i&0x10 == 0x00 {
				t[i] = opEntry{group: groupCoprocRegister, execute: (*CPU).executeCoprocRegister}
			} else {
				t[i] = opEntry{group: groupSWI, execute: (*CPU).executeSWI}
			}
		}
	}

	return t
}

// execute the opcode. the first dispatch is on the subcode (bits 27 and 26)
// for the instructions that do not fit the table. everything else is
// dispatched through the optable
func (cpu *CPU) execute(opcode uint32) {
	cond := opcode >> 28

	if cond == 0xf {
		cpu.executeUnconditional(opcode)
		return
	}

	if !cpu.condition(cond) {
		return
	}

	// the extension space of subcode zero. multiplies, swaps and the
	// halfword and doubleword transfers
	if opcode&0x0e000090 == 0x00000090 {
		cpu.executeExtension(opcode)
		return
	}

	optable[(opcode>>20)&0xff].execute(cpu, opcode)
}

// the ARMv5 unconditional instruction space
func (cpu *CPU) executeUnconditional(opcode uint32) {
	switch (opcode >> 26) & 0x03 {
	case 0b01:
		// PLD. there are no caches so preloading has no effect
		if opcode&0x0d70f000 == 0x0550f000 {
			return
		}
	case 0b10:
		if opcode&0x02000000 == 0x02000000 {
			cpu.executeBLXImmediate(opcode)
			return
		}
	case 0b11:
		// the second coprocessor instruction space (LDC2, STC2, CDP2, MCR2
		// and MRC2) is not supported by any of the coprocessors
	}

	cpu.undefined(opcode)
}

// an encoding that belongs to a known instruction class but for which there
// is no implementation. this is fatal and is distinct from an undefined
// instruction
func (cpu *CPU) notImplemented(opcode uint32) {
	cpu.executionError = curated.Errorf(NotImplemented, opcode, cpu.executingPC)
}

func (cpu *CPU) executeUndefined(opcode uint32) {
	cpu.undefined(opcode)
}

// raise the undefined instruction exception for the opcode
func (cpu *CPU) undefined(opcode uint32) {
	cpu.raise(exceptions.UndefinedInstruction, fmt.Sprintf("%08x at %08x", opcode, cpu.executingPC))
}
