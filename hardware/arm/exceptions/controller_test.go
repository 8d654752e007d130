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

package exceptions_test

import (
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/test"
)

func TestPriority(t *testing.T) {
	regs := registers.NewBank()
	ctl := exceptions.NewController(regs, nil, nil)

	regs.Set(registers.PC, 0x80008000)
	test.DemandSuccess(t, regs.SetCPSR(uint32(registers.ModeSVC)))

	ctl.Raise(exceptions.IRQ, "timer")
	ctl.Raise(exceptions.DataAbort, "translation fault")
	test.ExpectSuccess(t, ctl.AnyPending())

	ok, err := ctl.ServiceOne()
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, regs.Mode(), registers.ModeABT)
	test.ExpectEquality(t, regs.Get(registers.PC), 0x10)
	test.ExpectEquality(t, regs.Get(registers.LR), 0x80008008)
	test.ExpectFailure(t, ctl.Pending(exceptions.DataAbort))
	test.ExpectSuccess(t, ctl.Pending(exceptions.IRQ))
	test.ExpectEquality(t, ctl.Reason(exceptions.IRQ), "timer")

	spsr, err := regs.SPSR()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spsr, uint32(registers.ModeSVC))

	ok, err = ctl.ServiceOne()
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, regs.Mode(), registers.ModeIRQ)
	test.ExpectEquality(t, regs.Get(registers.PC), 0x18)
	test.ExpectEquality(t, regs.Get(registers.LR), 0x14)
	test.ExpectFailure(t, ctl.AnyPending())

	ok, err = ctl.ServiceOne()
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, err)
}

func TestPriorityOrder(t *testing.T) {
	order := []exceptions.Kind{
		exceptions.Reset,
		exceptions.DataAbort,
		exceptions.FIQ,
		exceptions.IRQ,
		exceptions.PrefetchAbort,
		exceptions.UndefinedInstruction,
		exceptions.SoftwareInterrupt,
	}

	regs := registers.NewBank()
	ctl := exceptions.NewController(regs, nil, nil)

	// raise in reverse order
	for i := len(order) - 1; i >= 0; i-- {
		ctl.Raise(order[i], "")
	}

	for _, k := range order {
		test.ExpectSuccess(t, ctl.Pending(k), k)
		_, err := ctl.ServiceOne()
		test.ExpectSuccess(t, err)
		test.ExpectFailure(t, ctl.Pending(k), k)
		test.ExpectEquality(t, regs.Get(registers.PC), k.Vector(), k)
	}
}

func TestEntry(t *testing.T) {
	tests := []struct {
		kind   exceptions.Kind
		mode   registers.Mode
		lr     uint32
		fiqOff bool
	}{
		{kind: exceptions.Reset, mode: registers.ModeSVC, lr: 0x1008, fiqOff: true},
		{kind: exceptions.UndefinedInstruction, mode: registers.ModeUND, lr: 0x1004},
		{kind: exceptions.SoftwareInterrupt, mode: registers.ModeSVC, lr: 0x1004},
		{kind: exceptions.PrefetchAbort, mode: registers.ModeABT, lr: 0x1004},
		{kind: exceptions.DataAbort, mode: registers.ModeABT, lr: 0x1008},
		{kind: exceptions.IRQ, mode: registers.ModeIRQ, lr: 0x1004},
		{kind: exceptions.FIQ, mode: registers.ModeFIQ, lr: 0x1004, fiqOff: true},
	}

	for _, tt := range tests {
		regs := registers.NewBank()
		high := true
		ctl := exceptions.NewController(regs, func() bool { return high }, nil)

		// user mode, thumb state, interrupts enabled and some flags
		cpsr := registers.FlagN | registers.FlagC | registers.FlagT | uint32(registers.ModeUSR)
		test.DemandSuccess(t, regs.SetCPSR(cpsr))
		regs.Set(registers.PC, 0x1000)

		ctl.Raise(tt.kind, "test")
		_, err := ctl.ServiceOne()
		test.DemandSuccess(t, err)

		test.ExpectEquality(t, regs.Mode(), tt.mode, tt.kind)
		test.ExpectEquality(t, regs.Get(registers.LR), tt.lr, tt.kind)
		test.ExpectEquality(t, regs.Get(registers.PC), exceptions.HighVectorBase+tt.kind.Vector(), tt.kind)
		test.ExpectFailure(t, regs.T(), tt.kind)
		test.ExpectSuccess(t, regs.I(), tt.kind)
		test.ExpectEquality(t, regs.F(), tt.fiqOff, tt.kind)
		test.ExpectSuccess(t, regs.N(), tt.kind)
		test.ExpectSuccess(t, regs.C(), tt.kind)

		spsr, err := regs.SPSR()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, spsr, cpsr, tt.kind)
	}
}

func TestDoubleRaise(t *testing.T) {
	regs := registers.NewBank()
	ctl := exceptions.NewController(regs, nil, nil)
	ctl.Raise(exceptions.SoftwareInterrupt, "first")

	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	ctl.Raise(exceptions.SoftwareInterrupt, "second")
	t.Errorf("expected panic")
}

func TestDiscard(t *testing.T) {
	regs := registers.NewBank()
	ctl := exceptions.NewController(regs, nil, nil)

	ctl.Raise(exceptions.IRQ, "timer")
	ctl.Raise(exceptions.SoftwareInterrupt, "syscall")

	test.ExpectSuccess(t, ctl.Discard(exceptions.SoftwareInterrupt))
	test.ExpectFailure(t, ctl.Discard(exceptions.SoftwareInterrupt))
	test.ExpectFailure(t, ctl.Pending(exceptions.SoftwareInterrupt))
	test.ExpectSuccess(t, ctl.Pending(exceptions.IRQ))

	// can be raised again after being discarded
	ctl.Raise(exceptions.SoftwareInterrupt, "syscall")
	test.ExpectSuccess(t, ctl.Pending(exceptions.SoftwareInterrupt))
}
