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

package mmu

import (
	"fmt"
)

// Bus is the part of the bus used by the table walk. Table walks are
// physical accesses and are not translated.
type Bus interface {
	TryRead(addr uint32, size int) bool
	Read32(addr uint32) (uint32, error)
}

// FaultRecorder stores the fault status and fault address of a fault.
type FaultRecorder interface {
	SetFault(fsr uint32, far uint32)
}

// descriptor types
const (
	l1Fault   = 0
	l1Coarse  = 1
	l1Section = 2
	l1Fine    = 3

	l2Fault = 0
	l2Large = 1
	l2Small = 2
	l2Tiny  = 3
)

// MMU translates virtual addresses. Each core has its own MMU.
type MMU struct {
	bus      Bus
	recorder FaultRecorder

	enabled bool
	ttbr    uint32

	// fast context switch process ID. bits 31:25 only
	pid uint32
}

// NewMMU is the preferred method of initialisation for the MMU type. The MMU
// is initially disabled. The recorder can be nil.
func NewMMU(bus Bus, recorder FaultRecorder) *MMU {
	return &MMU{
		bus:      bus,
		recorder: recorder,
	}
}

func (mmu *MMU) String() string {
	if !mmu.enabled {
		return "MMU: disabled"
	}
	return fmt.Sprintf("MMU: enabled (ttbr=%08x, pid=%02x)", mmu.ttbr, mmu.pid>>25)
}

// SetRecorder changes the fault recorder.
func (mmu *MMU) SetRecorder(recorder FaultRecorder) {
	mmu.recorder = recorder
}

// SetTTBR sets the translation table base. The bottom fourteen bits are
// ignored by the walk.
func (mmu *MMU) SetTTBR(v uint32) {
	mmu.ttbr = v
}

// TTBR returns the translation table base.
func (mmu *MMU) TTBR() uint32 {
	return mmu.ttbr
}

// SetFCSEPID sets the fast context switch process ID. Only bits 31:25 are
// used.
func (mmu *MMU) SetFCSEPID(v uint32) {
	mmu.pid = v & 0xfe000000
}

// FCSEPID returns the fast context switch process ID.
func (mmu *MMU) FCSEPID() uint32 {
	return mmu.pid
}

// Modify a virtual address with the fast context switch process ID. Virtual
// addresses in the bottom 32MB are relocated to the block selected by the
// PID.
func (mmu *MMU) Modify(va uint32) uint32 {
	if va&0xfe000000 == 0 {
		return va | mmu.pid
	}
	return va
}

// SetEnabled turns translation on or off.
func (mmu *MMU) SetEnabled(enabled bool) {
	mmu.enabled = enabled
}

// Enabled returns true if translation is on.
func (mmu *MMU) Enabled() bool {
	return mmu.enabled
}

// Translate the virtual address to a physical address. The fetch argument
// indicates that the access is an instruction fetch.
//
// If the MMU is disabled the virtual address is returned unchanged. Otherwise
// the address is first modified by the FCSE PID and the modified address is
// the one walked and the one reported by a fault.
func (mmu *MMU) Translate(va uint32, fetch bool) (uint32, *Fault) {
	if !mmu.enabled {
		return va, nil
	}

	va = mmu.Modify(va)

	l1Addr := (mmu.ttbr & 0xffffc000) | ((va >> 20) << 2)
	l1, ok := mmu.walk(l1Addr)
	if !ok {
		return 0, mmu.fault(va, fetch, FaultExternalL1, 0, fmt.Sprintf("level one descriptor unreadable at %08x", l1Addr))
	}

	domain := (l1 >> 5) & 0x0f

	var l2Addr uint32

	switch l1 & 0x03 {
	case l1Fault:
		return 0, mmu.fault(va, fetch, FaultSection, domain, fmt.Sprintf("section translation fault (l1=%08x)", l1))
	case l1Section:
		return (l1 & 0xfff00000) | (va & 0x000fffff), nil
	case l1Coarse:
		l2Addr = (l1 & 0xfffffc00) | (((va >> 12) & 0xff) << 2)
	case l1Fine:
		l2Addr = (l1 & 0xffffc000) | (((va >> 10) & 0x3ff) << 2)
	}

	l2, ok := mmu.walk(l2Addr)
	if !ok {
		return 0, mmu.fault(va, fetch, FaultExternalL2, domain, fmt.Sprintf("level two descriptor unreadable at %08x", l2Addr))
	}

	switch l2 & 0x03 {
	case l2Large:
		return (l2 & 0xffff0000) | (va & 0x0000ffff), nil
	case l2Small:
		return (l2 & 0xfffff000) | (va & 0x00000fff), nil
	case l2Tiny:
		if l1&0x03 == l1Coarse {
			return 0, mmu.fault(va, fetch, FaultPage, domain, fmt.Sprintf("tiny page in coarse table (l2=%08x)", l2))
		}
		return (l2 & 0xfffffc00) | (va & 0x000003ff), nil
	}

	return 0, mmu.fault(va, fetch, FaultPage, domain, fmt.Sprintf("page translation fault (l2=%08x)", l2))
}

// read a descriptor from physical memory
func (mmu *MMU) walk(addr uint32) (uint32, bool) {
	if !mmu.bus.TryRead(addr, 4) {
		return 0, false
	}
	v, err := mmu.bus.Read32(addr)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (mmu *MMU) fault(va uint32, fetch bool, status uint32, domain uint32, reason string) *Fault {
	f := &Fault{
		Status:   status,
		Domain:   domain,
		Address:  va,
		Prefetch: fetch,
		Reason:   reason,
	}
	mmu.Record(f)
	return f
}

// Record the fault with the fault recorder. Used directly by the CPU for
// external aborts that happen after translation.
func (mmu *MMU) Record(f *Fault) {
	if mmu.recorder != nil {
		mmu.recorder.SetFault(f.FSR(), f.Address)
	}
}
