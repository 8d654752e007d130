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

package registers

import "fmt"

// Mode is the processor mode as stored in the bottom five bits of the CPSR.
type Mode uint32

// List of valid processor modes.
const (
	ModeUSR Mode = 0x10
	ModeFIQ Mode = 0x11
	ModeIRQ Mode = 0x12
	ModeSVC Mode = 0x13
	ModeABT Mode = 0x17
	ModeUND Mode = 0x1b
	ModeSYS Mode = 0x1f
)

// the number of valid modes. used to size the lookup table
const numModes = 7

// index of mode in the lookup table. returns -1 for invalid modes
func (m Mode) index() int {
	switch m {
	case ModeUSR:
		return 0
	case ModeFIQ:
		return 1
	case ModeIRQ:
		return 2
	case ModeSVC:
		return 3
	case ModeABT:
		return 4
	case ModeUND:
		return 5
	case ModeSYS:
		return 6
	}
	return -1
}

// Valid returns true if the mode is one of the seven ARM modes.
func (m Mode) Valid() bool {
	return m.index() >= 0
}

// Privileged returns true for all modes except USR.
func (m Mode) Privileged() bool {
	return m != ModeUSR
}

// HasSPSR returns true if the mode has a saved program status register.
func (m Mode) HasSPSR() bool {
	return m.Valid() && m != ModeUSR && m != ModeSYS
}

func (m Mode) String() string {
	switch m {
	case ModeUSR:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSVC:
		return "SVC"
	case ModeABT:
		return "ABT"
	case ModeUND:
		return "UND"
	case ModeSYS:
		return "SYS"
	}
	return fmt.Sprintf("invalid mode (%#02x)", uint32(m))
}
