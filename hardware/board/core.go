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

package board

import (
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/hardware/interrupts"
)

// Steppable is implemented by anything that can be advanced one instruction
// at a time. An error returned by Step() is fatal.
type Steppable interface {
	Step() error
	Reset()
}

// BusMaster is implemented by devices that initiate bus accesses.
type BusMaster interface {
	MasterID() int
}

// RegisterFile gives access to the registers of a core. The String()
// function should return a snapshot suitable for a diagnostic log.
type RegisterFile interface {
	Registers() *registers.Bank
	String() string
}

// Core is a processor that can be placed on the board.
type Core interface {
	Steppable
	BusMaster
	RegisterFile

	SetInitialRegisters(entry uint32, args ...uint32) error
	SetInterrupts(irq interrupts.Destination, fiq interrupts.Destination)
	Instructions() uint64
	Idle() bool
}
