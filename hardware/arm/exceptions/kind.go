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

// Package exceptions implements the ARM exception controller. Exceptions are
// raised during the execution of an instruction (or by the polling of the
// interrupt lines) and are serviced by the CPU once the instruction has
// completed.
//
// At most one exception of each kind can be pending at any time. Raising an
// exception of a kind that is already pending is a logic error and will cause
// a panic. Exceptions of different kinds can be pending at the same time, in
// which case they are serviced one at a time in order of priority.
package exceptions

import "fmt"

// Kind identifies an ARM exception. The numeric order of the values is the
// priority order, highest priority first.
type Kind int

// List of exception kinds in priority order.
const (
	Reset Kind = iota
	DataAbort
	FIQ
	IRQ
	PrefetchAbort
	UndefinedInstruction
	SoftwareInterrupt
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Reset:
		return "reset"
	case DataAbort:
		return "data abort"
	case FIQ:
		return "FIQ"
	case IRQ:
		return "IRQ"
	case PrefetchAbort:
		return "prefetch abort"
	case UndefinedInstruction:
		return "undefined instruction"
	case SoftwareInterrupt:
		return "software interrupt"
	}
	return fmt.Sprintf("unknown exception (%d)", int(k))
}

// Vector returns the offset of the exception vector from the base of the
// vector table.
func (k Kind) Vector() uint32 {
	switch k {
	case Reset:
		return 0x00
	case UndefinedInstruction:
		return 0x04
	case SoftwareInterrupt:
		return 0x08
	case PrefetchAbort:
		return 0x0c
	case DataAbort:
		return 0x10
	case IRQ:
		return 0x18
	case FIQ:
		return 0x1c
	}
	panic(fmt.Sprintf("exceptions: no vector for %v", k))
}

// HighVectorBase is the base address of the vector table when high vectors
// are selected.
const HighVectorBase = 0xffff0000
