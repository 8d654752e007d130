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

// Package mmu implements the ARMv5 translation table walk. Virtual addresses
// are translated to physical addresses by reading the level one and level two
// descriptors from the bus, rooted at the table base held in the TTBR.
//
// Access permissions and domains are not checked and there is no TLB. Every
// translation walks the tables.
//
// A failed translation results in a Fault value rather than an error. The
// fault is recorded in the fault status and fault address registers of the
// system control coprocessor before being returned to the CPU, which then
// raises the appropriate abort exception.
package mmu

import "fmt"

// Fault status codes.
const (
	FaultSection    uint32 = 0x5
	FaultPage       uint32 = 0x7
	FaultExternal   uint32 = 0x8
	FaultExternalL1 uint32 = 0xc
	FaultExternalL2 uint32 = 0xe
)

// Fault describes a failed translation or an external abort.
type Fault struct {
	Status   uint32
	Domain   uint32
	Address  uint32
	Prefetch bool
	Reason   string
}

// FSR returns the value of the fault status register for the fault.
func (f *Fault) FSR() uint32 {
	return (f.Domain&0x0f)<<4 | f.Status&0x0f
}

func (f *Fault) String() string {
	kind := "data"
	if f.Prefetch {
		kind = "prefetch"
	}
	return fmt.Sprintf("%s abort at %08x (fsr=%02x): %s", kind, f.Address, f.FSR(), f.Reason)
}
