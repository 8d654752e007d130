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

	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
)

// executeBlockTransfer implements LDM and STM in all addressing modes
// (addressing mode 4), including the user bank and exception return forms
func (cpu *CPU) executeBlockTransfer(opcode uint32) {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	sBit := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000
	load := opcode&0x00100000 == 0x00100000
	rn := int((opcode >> 16) & 0x0f)
	list := opcode & 0xffff

	n := uint32(bits.OnesCount32(list))
	base := cpu.regs.GetSeen(rn)

	var start uint32
	var wb uint32
	if up {
		start = base
		if pre {
			start += 4
		}
		wb = base + n*4
	} else {
		start = base - n*4
		if !pre {
			start += 4
		}
		wb = base - n*4
	}

	pcInList := list&0x8000 == 0x8000

	// the user bank forms. LDM (2) and STM (2)
	user := sBit && !(load && pcInList)

	if load {
		var values [16]uint32

		addr := start
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			v, ok := cpu.read32(addr)
			if !ok {
				return
			}
			values[i] = v
			addr += 4
		}

		if writeback {
			cpu.regs.SetSeen(rn, wb)
		}

		for i := 0; i < 15; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			if user {
				cpu.regs.SetUser(i, values[i])
			} else {
				cpu.regs.SetSeen(i, values[i])
			}
		}

		if pcInList {
			if sBit {
				// LDM (3). exception return
				if spsr, err := cpu.regs.SPSR(); err == nil {
					if err := cpu.regs.SetCPSR(spsr); err != nil {
						cpu.executionError = err
						return
					}
				}
				if cpu.regs.T() {
					cpu.regs.SetSeen(registers.PC, values[15]&^0x01)
				} else {
					cpu.regs.SetSeen(registers.PC, values[15]&^0x03)
				}
			} else {
				cpu.loadPC(values[15])
			}
		}

		return
	}

	// check every address before writing so that an abort leaves memory
	// unchanged
	for addr, i := start, uint32(0); i < n; i++ {
		if !cpu.probeWrite32(addr) {
			return
		}
		addr += 4
	}

	addr := start
	for i := 0; i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}

		var v uint32
		if user {
			v = cpu.regs.GetUser(i)
			if i == registers.PC {
				v += 4
			}
		} else {
			v = cpu.storeValue(i)
		}

		if !cpu.write32(addr, v) {
			return
		}
		addr += 4
	}

	if writeback {
		cpu.regs.SetSeen(rn, wb)
	}
}
