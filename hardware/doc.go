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

// Package hardware is the base package for the ARMv5TE platform emulation. It
// and its sub-packages contain everything required for a headless emulation.
//
// The board package is the root of the emulation and contains references to
// all the sub-systems: the bus, RAM and the ARM cores. From there the
// emulation can either be started to run continuously, with each core in its
// own goroutine, or it can be stepped instruction by instruction.
package hardware
