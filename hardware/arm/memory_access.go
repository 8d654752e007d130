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
	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/arm/mmu"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/logger"
)

// all memory access functions return false if the access did not complete.
// in that case either an abort exception has been raised or a fatal error
// has been set. the calling instruction must return without side effects

// translate a virtual address. a fault results in the appropriate abort
func (cpu *CPU) translate(va uint32, fetch bool) (uint32, bool) {
	pa, fault := cpu.mmu.Translate(va, fetch)
	if fault != nil {
		cpu.abort(fault)
		return 0, false
	}
	return pa, true
}

func (cpu *CPU) abort(fault *mmu.Fault) {
	if fault.Prefetch {
		cpu.raise(exceptions.PrefetchAbort, fault.String())
	} else {
		cpu.raise(exceptions.DataAbort, fault.String())
	}
}

// handle an error from the bus. an access to an address with no slave
// becomes an external abort unless the preferences say otherwise. all other
// errors are fatal
func (cpu *CPU) busError(va uint32, err error, fetch bool) {
	if !curated.Is(err, bus.InvalidAddress) || cpu.abortOnInvalidAddress {
		cpu.executionError = curated.Errorf(MemoryError, err, cpu.executingPC)
		return
	}

	fault := &mmu.Fault{
		Status:   mmu.FaultExternal,
		Address:  va,
		Prefetch: fetch,
		Reason:   err.Error(),
	}
	cpu.mmu.Record(fault)

	logger.Logf(logger.Allow, "ARM", "core %d: %v", cpu.id, fault)

	cpu.abort(fault)
}

func (cpu *CPU) fetch(va uint32) (uint32, bool) {
	pa, ok := cpu.translate(va, true)
	if !ok {
		return 0, false
	}
	v, err := cpu.bus.Read32(pa)
	if err != nil {
		cpu.busError(va, err, true)
		return 0, false
	}
	return v, true
}

func (cpu *CPU) read8(va uint32) (uint8, bool) {
	pa, ok := cpu.translate(va, false)
	if !ok {
		return 0, false
	}
	v, err := cpu.bus.Read8(pa)
	if err != nil {
		cpu.busError(va, err, false)
		return 0, false
	}
	return v, true
}

// halfword accesses ignore bit zero of the address
func (cpu *CPU) read16(va uint32) (uint16, bool) {
	va &^= 0x01
	pa, ok := cpu.translate(va, false)
	if !ok {
		return 0, false
	}
	v, err := cpu.bus.Read16(pa)
	if err != nil {
		cpu.busError(va, err, false)
		return 0, false
	}
	return v, true
}

// word accesses ignore the bottom two bits of the address. the caller is
// responsible for any rotation required by an unaligned load
func (cpu *CPU) read32(va uint32) (uint32, bool) {
	va &^= 0x03
	pa, ok := cpu.translate(va, false)
	if !ok {
		return 0, false
	}
	v, err := cpu.bus.Read32(pa)
	if err != nil {
		cpu.busError(va, err, false)
		return 0, false
	}
	return v, true
}

func (cpu *CPU) write8(va uint32, v uint8) bool {
	pa, ok := cpu.translate(va, false)
	if !ok {
		return false
	}
	if err := cpu.bus.Write8(pa, v); err != nil {
		cpu.busError(va, err, false)
		return false
	}
	return true
}

func (cpu *CPU) write16(va uint32, v uint16) bool {
	va &^= 0x01
	pa, ok := cpu.translate(va, false)
	if !ok {
		return false
	}
	if err := cpu.bus.Write16(pa, v); err != nil {
		cpu.busError(va, err, false)
		return false
	}
	return true
}

func (cpu *CPU) write32(va uint32, v uint32) bool {
	va &^= 0x03
	pa, ok := cpu.translate(va, false)
	if !ok {
		return false
	}
	if err := cpu.bus.Write32(pa, v); err != nil {
		cpu.busError(va, err, false)
		return false
	}
	return true
}

// check that a word write to the virtual address would succeed without
// performing it. used by instructions that write more than once so that an
// abort happens before any memory is changed
func (cpu *CPU) probeWrite32(va uint32) bool {
	va &^= 0x03
	pa, ok := cpu.translate(va, false)
	if !ok {
		return false
	}
	if !cpu.bus.TryWrite(pa, 4) {
		cpu.busError(va, curated.Errorf(bus.InvalidAddress, pa, pa+3), false)
		return false
	}
	return true
}
