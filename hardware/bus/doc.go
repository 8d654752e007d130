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

// Package bus implements the physical address space. Slave devices are
// registered at inclusive address ranges and all accesses by bus masters are
// routed to the slave covering the address.
//
// Slaves are given the offset of the access from the start of the range at
// which they were registered. The same slave can be registered at more than
// one range, which is how mirrored devices are modelled. Ranges must not
// overlap.
//
// The Bus is safe for concurrent use. Reads take a shared lock and writes take
// an exclusive lock. The most recently used slave entry is cached as a hint to
// speed up repeated accesses to the same device. The cache entry is always
// checked against the requested range before use.
package bus
