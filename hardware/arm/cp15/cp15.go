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

// Package cp15 implements the ARMv5 system control coprocessor. It holds the
// identification registers, the control register, the translation table base
// and the fault status and address registers. Cache and TLB maintenance
// operations are accepted and have no effect.
//
// The control register's M bit enables the MMU and the V bit selects the high
// exception vectors. Writes to the translation table base are forwarded to
// the MMU immediately.
package cp15

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/arm5emu/hardware/arm/coproc"
)

// Number is the coprocessor number of the system control coprocessor.
const Number = 15

// MMU is the part of the MMU that is controlled by CP15.
type MMU interface {
	SetTTBR(v uint32)
	SetEnabled(enabled bool)
	SetFCSEPID(v uint32)
}

// identification values of an ARM926EJ-S
const (
	mainID    uint32 = 0x41069265
	cacheType uint32 = 0x1d172172
)

// control register bits
const (
	ControlM uint32 = 1 << 0
	ControlA uint32 = 1 << 1
	ControlC uint32 = 1 << 2
	ControlW uint32 = 1 << 3
	ControlS uint32 = 1 << 8
	ControlR uint32 = 1 << 9
	ControlI uint32 = 1 << 12
	ControlV uint32 = 1 << 13

	// bits that always read as one
	controlFixed uint32 = 0x00050078
)

// c7 test and clean operations read with the Z flag set to indicate that the
// data cache is clean
const cleanComplete uint32 = 0x40000000

// register identifiers
var (
	regMainID      = coproc.RegID(0, 0, 0, 0)
	regCacheType   = coproc.RegID(0, 0, 0, 1)
	regTCMStatus   = coproc.RegID(0, 0, 0, 2)
	regControl     = coproc.RegID(1, 0, 0, 0)
	regTTBR        = coproc.RegID(2, 0, 0, 0)
	regDACR        = coproc.RegID(3, 0, 0, 0)
	regFSR         = coproc.RegID(5, 0, 0, 0)
	regIFSR        = coproc.RegID(5, 0, 0, 1)
	regFAR         = coproc.RegID(6, 0, 0, 0)
	regWFI         = coproc.RegID(7, 0, 0, 4)
	regTestClean   = coproc.RegID(7, 0, 10, 3)
	regTestCleanI  = coproc.RegID(7, 0, 14, 3)
	regDLockdown   = coproc.RegID(9, 0, 0, 0)
	regILockdown   = coproc.RegID(9, 0, 0, 1)
	regTLBLockdown = coproc.RegID(10, 0, 0, 0)
	regFCSEPID     = coproc.RegID(13, 0, 0, 0)
	regContextID   = coproc.RegID(13, 0, 0, 1)
)

// CP15 is the system control coprocessor of a single core.
type CP15 struct {
	mmu MMU

	// reset value of the V bit
	highVectors bool

	control    uint32
	ttbr       uint32
	dacr       uint32
	fsr        uint32
	ifsr       uint32
	far        uint32
	dLockdown  uint32
	iLockdown  uint32
	tlbLock    uint32
	fcsePID    uint32
	contextID  uint32
	waitForInt bool
}

// NewCP15 is the preferred method of initialisation for the CP15 type. The
// highVectors argument is the reset value of the control register's V bit.
func NewCP15(mmu MMU, highVectors bool) *CP15 {
	cp := &CP15{
		mmu:         mmu,
		highVectors: highVectors,
	}
	cp.Reset()
	return cp
}

// Reset the coprocessor registers. The MMU is disabled.
func (cp *CP15) Reset() {
	cp.control = controlFixed
	if cp.highVectors {
		cp.control |= ControlV
	}
	cp.ttbr = 0
	cp.dacr = 0
	cp.fsr = 0
	cp.ifsr = 0
	cp.far = 0
	cp.dLockdown = 0
	cp.iLockdown = 0
	cp.tlbLock = 0
	cp.fcsePID = 0
	cp.contextID = 0
	cp.waitForInt = false
	cp.mmu.SetTTBR(0)
	cp.mmu.SetEnabled(false)
	cp.mmu.SetFCSEPID(0)
}

func (cp *CP15) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("control: %08x\tttbr: %08x\tdacr: %08x\n", cp.control, cp.ttbr, cp.dacr))
	s.WriteString(fmt.Sprintf("fsr: %08x\tfar: %08x\tpid: %08x", cp.fsr, cp.far, cp.fcsePID))
	return s.String()
}

// HighVectors returns true if the exception vectors are at 0xffff0000.
func (cp *CP15) HighVectors() bool {
	return cp.control&ControlV == ControlV
}

// Control returns the value of the control register.
func (cp *CP15) Control() uint32 {
	return cp.control
}

// SetFault implements the mmu.FaultRecorder interface.
func (cp *CP15) SetFault(fsr uint32, far uint32) {
	cp.fsr = fsr
	cp.far = far
}

// WaitForInterrupt returns true if a wait-for-interrupt operation has been
// performed since the last call. The flag is cleared by the call.
func (cp *CP15) WaitForInterrupt() bool {
	w := cp.waitForInt
	cp.waitForInt = false
	return w
}

// ValidCRegNumber implements the coproc.Coprocessor interface.
func (cp *CP15) ValidCRegNumber(id uint32) bool {
	crn := (id >> 10) & 0x0f
	op1 := (id >> 7) & 0x07

	switch crn {
	case 7, 8:
		// cache and TLB maintenance. every encoding with op1 zero is accepted
		return op1 == 0
	}

	switch id {
	case regMainID, regCacheType, regTCMStatus, regControl, regTTBR, regDACR,
		regFSR, regIFSR, regFAR, regDLockdown, regILockdown, regTLBLockdown,
		regFCSEPID, regContextID:
		return true
	}

	return false
}

// GetCReg implements the coproc.Coprocessor interface.
func (cp *CP15) GetCReg(id uint32) uint32 {
	switch id {
	case regMainID:
		return mainID
	case regCacheType:
		return cacheType
	case regTCMStatus:
		return 0
	case regControl:
		return cp.control
	case regTTBR:
		return cp.ttbr
	case regDACR:
		return cp.dacr
	case regFSR:
		return cp.fsr
	case regIFSR:
		return cp.ifsr
	case regFAR:
		return cp.far
	case regTestClean, regTestCleanI:
		return cleanComplete
	case regDLockdown:
		return cp.dLockdown
	case regILockdown:
		return cp.iLockdown
	case regTLBLockdown:
		return cp.tlbLock
	case regFCSEPID:
		return cp.fcsePID
	case regContextID:
		return cp.contextID
	}
	return 0
}

// SetCReg implements the coproc.Coprocessor interface.
func (cp *CP15) SetCReg(id uint32, v uint32) {
	switch id {
	case regControl:
		cp.control = v | controlFixed
		cp.mmu.SetEnabled(cp.control&ControlM == ControlM)
	case regTTBR:
		cp.ttbr = v
		cp.mmu.SetTTBR(v)
	case regDACR:
		cp.dacr = v
	case regFSR:
		cp.fsr = v
	case regIFSR:
		cp.ifsr = v
	case regFAR:
		cp.far = v
	case regWFI:
		cp.waitForInt = true
	case regDLockdown:
		cp.dLockdown = v
	case regILockdown:
		cp.iLockdown = v
	case regTLBLockdown:
		cp.tlbLock = v
	case regFCSEPID:
		cp.fcsePID = v & 0xfe000000
		cp.mmu.SetFCSEPID(cp.fcsePID)
	case regContextID:
		cp.contextID = v
	}
}
