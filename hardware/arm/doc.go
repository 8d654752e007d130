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

// Package arm implements an ARMv5TE core. The CPU type fetches instructions
// through the MMU and the bus, decodes them and executes them. Exceptions
// raised during execution are serviced by the exception controller at the
// end of each Step().
//
// Only the ARM instruction set is supported. Execution with the T bit set in
// the CPSR results in a ThumbNotSupported error. There is no cycle counting
// and no modelling of caches or TLBs.
//
// The CPU is not safe for concurrent use. Each core should be stepped from a
// single goroutine, which is what the Runner type in the board package does.
// The bus is the only resource shared between cores.
//
// Errors returned by Step() are fatal. The guest visible results of bad
// instructions or bad memory accesses are exceptions and are not errors.
package arm
