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

package exceptions

import (
	"fmt"

	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/logger"
)

// Registers is the view of the register bank required by the Controller.
type Registers interface {
	GetSeen(n int) uint32
	Set(n int, v uint32)
	CPSR() uint32
	SetCPSR(v uint32) error
	SetSPSR(v uint32) error
}

type record struct {
	pending bool
	reason  string
}

// Controller holds the pending exceptions of a single core.
type Controller struct {
	regs    Registers
	records [numKinds]record

	// returns true if the vector table is at HighVectorBase
	highVectors func() bool

	// logging permission for exception entry
	perm logger.Permission
}

// NewController is the preferred method of initialisation for the Controller
// type. The highVectors function is consulted every time an exception is
// serviced. The permission controls whether exception entry is logged.
func NewController(regs Registers, highVectors func() bool, perm logger.Permission) *Controller {
	if highVectors == nil {
		highVectors = func() bool { return false }
	}
	return &Controller{
		regs:        regs,
		highVectors: highVectors,
		perm:        perm,
	}
}

// Raise an exception. The reason is used only for diagnostic purposes.
func (ctl *Controller) Raise(kind Kind, reason string) {
	if kind < 0 || kind >= numKinds {
		panic(fmt.Sprintf("exceptions: raising unknown exception kind (%d)", int(kind)))
	}
	if ctl.records[kind].pending {
		panic(fmt.Sprintf("exceptions: %v raised while already pending (%s)", kind, ctl.records[kind].reason))
	}
	ctl.records[kind] = record{pending: true, reason: reason}
}

// Pending returns true if the exception kind is pending.
func (ctl *Controller) Pending(kind Kind) bool {
	return ctl.records[kind].pending
}

// Reason returns the diagnostic reason of a pending exception. The empty
// string is returned if the exception is not pending.
func (ctl *Controller) Reason(kind Kind) string {
	return ctl.records[kind].reason
}

// AnyPending returns true if any exception is pending.
func (ctl *Controller) AnyPending() bool {
	for _, r := range ctl.records {
		if r.pending {
			return true
		}
	}
	return false
}

// Discard forgets a pending exception without servicing it. Returns true if
// the exception was pending.
func (ctl *Controller) Discard(kind Kind) bool {
	p := ctl.records[kind].pending
	ctl.records[kind] = record{}
	return p
}

// Clear forgets all pending exceptions.
func (ctl *Controller) Clear() {
	ctl.records = [numKinds]record{}
}

// ServiceOne takes the highest priority pending exception and performs the
// exception entry sequence. Returns false if there was no pending exception.
func (ctl *Controller) ServiceOne() (bool, error) {
	for k := Kind(0); k < numKinds; k++ {
		if ctl.records[k].pending {
			reason := ctl.records[k].reason
			ctl.records[k] = record{}
			return true, ctl.enter(k, reason)
		}
	}
	return false, nil
}

// target mode of each exception kind
func (k Kind) mode() registers.Mode {
	switch k {
	case Reset, SoftwareInterrupt:
		return registers.ModeSVC
	case UndefinedInstruction:
		return registers.ModeUND
	case PrefetchAbort, DataAbort:
		return registers.ModeABT
	case IRQ:
		return registers.ModeIRQ
	case FIQ:
		return registers.ModeFIQ
	}
	panic(fmt.Sprintf("exceptions: no mode for %v", k))
}

// value to be stored in the link register, relative to the PC as seen by the
// instruction
func (k Kind) linkAdjust() uint32 {
	switch k {
	case Reset, DataAbort:
		return 0
	}
	return 4
}

func (ctl *Controller) enter(kind Kind, reason string) error {
	cpsr := ctl.regs.CPSR()
	lr := ctl.regs.GetSeen(registers.PC) - kind.linkAdjust()

	ncpsr := (cpsr &^ (registers.ModeMask | registers.FlagT)) | uint32(kind.mode()) | registers.FlagI
	if kind == Reset || kind == FIQ {
		ncpsr |= registers.FlagF
	}

	if err := ctl.regs.SetCPSR(ncpsr); err != nil {
		return err
	}
	if err := ctl.regs.SetSPSR(cpsr); err != nil {
		return err
	}
	ctl.regs.Set(registers.LR, lr)

	vector := kind.Vector()
	if ctl.highVectors() {
		vector += HighVectorBase
	}
	ctl.regs.Set(registers.PC, vector)

	if ctl.perm != nil {
		logger.Logf(ctl.perm, "exceptions", "%v: %s (lr=%08x, vector=%08x)", kind, reason, lr, vector)
	}

	return nil
}
