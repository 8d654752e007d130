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
	"fmt"
	"strings"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm/coproc"
	"github.com/jetsetilly/arm5emu/hardware/arm/cp15"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/arm/mmu"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/hardware/interrupts"
	"github.com/jetsetilly/arm5emu/hardware/preferences"
	"github.com/jetsetilly/arm5emu/logger"
)

// Sentinal error patterns.
const (
	NotImplemented         = "ARM: instruction not implemented (%08x at %08x)"
	UnimplementedCoprocReg = "ARM: unimplemented coprocessor register (p%d %s at %08x)"
	ThumbNotSupported      = "ARM: thumb state not supported (PC: %08x)"
	MemoryError            = "ARM: memory error: %v (PC: %08x)"
	TooManyRegisters       = "ARM: too many initial registers (%d)"
)

// Bus is the physical address space as seen by a core.
type Bus interface {
	TryRead(addr uint32, size int) bool
	TryWrite(addr uint32, size int) bool
	Read8(addr uint32) (uint8, error)
	Read16(addr uint32) (uint16, error)
	Read32(addr uint32) (uint32, error)
	Write8(addr uint32, v uint8) error
	Write16(addr uint32, v uint16) error
	Write32(addr uint32, v uint32) error
}

// the number of steps between updates of cached preference values
const prefsPulse = 10000

// CPU implements a single ARMv5TE core.
type CPU struct {
	id    int
	prefs *preferences.ARMPreferences
	bus   Bus

	regs *registers.Bank
	mmu  *mmu.MMU
	cp15 *cp15.CP15
	exc  *exceptions.Controller

	// attached coprocessors. indexed by coprocessor number
	coprocs [16]coproc.Coprocessor

	irq interrupts.Destination
	fiq interrupts.Destination

	// address and opcode of the instruction being executed
	executingPC uint32
	opcode      uint32

	// a synchronous exception was raised by the current instruction. the PC
	// is not advanced
	excepted bool

	// fatal error seen during execution of the current instruction
	executionError error

	// the core is waiting for an interrupt
	waiting bool

	// number of instructions executed since reset
	instructions uint64

	// cached preference values. updated every prefsPulse steps
	abortOnInvalidAddress bool
	pulse                 int
}

// NewCPU is the preferred method of initialisation for the CPU type. The id
// identifies the core as a bus master. The CPU is reset before being
// returned.
func NewCPU(id int, prefs *preferences.ARMPreferences, bus Bus) *CPU {
	cpu := &CPU{
		id:    id,
		prefs: prefs,
		bus:   bus,
		regs:  registers.NewBank(),
		irq:   interrupts.NullDestination{},
		fiq:   interrupts.NullDestination{},
	}

	cpu.mmu = mmu.NewMMU(bus, nil)
	cpu.cp15 = cp15.NewCP15(cpu.mmu, prefs.HighVectors.Get().(bool))
	cpu.mmu.SetRecorder(cpu.cp15)
	cpu.coprocs[cp15.Number] = cpu.cp15
	cpu.exc = exceptions.NewController(cpu.regs, cpu.cp15.HighVectors, prefs)

	cpu.Reset()

	return cpu
}

// MasterID implements the bus.Master interface.
func (cpu *CPU) MasterID() int {
	return cpu.id
}

// SetInterrupts connects the IRQ and FIQ lines of the core. A nil value
// disconnects the line.
func (cpu *CPU) SetInterrupts(irq interrupts.Destination, fiq interrupts.Destination) {
	if irq == nil {
		irq = interrupts.NullDestination{}
	}
	if fiq == nil {
		fiq = interrupts.NullDestination{}
	}
	cpu.irq = irq
	cpu.fiq = fiq
}

// Reset the core. The registers, the system control coprocessor and any
// pending exceptions are reset. The PC is set to the reset vector. The bus
// is not touched.
func (cpu *CPU) Reset() {
	cpu.updatePrefs()
	cpu.regs.Reset()
	cpu.cp15.Reset()
	cpu.exc.Clear()
	cpu.excepted = false
	cpu.executionError = nil
	cpu.waiting = false
	cpu.instructions = 0

	pc := exceptions.Reset.Vector()
	if cpu.cp15.HighVectors() {
		pc += exceptions.HighVectorBase
	}
	cpu.regs.Set(registers.PC, pc)
}

// SetInitialRegisters is intended to be called after Reset() and before the
// first call to Step(). Execution will begin at the entry address.
//
// The optional arguments are used to initialise the registers in order
// starting with R0. The function will return with an error if the SP, LR or
// PC is attempted to be initialised this way.
func (cpu *CPU) SetInitialRegisters(entry uint32, args ...uint32) error {
	if len(args) > registers.SP {
		return curated.Errorf(TooManyRegisters, len(args))
	}
	for i := range args {
		cpu.regs.Set(i, args[i])
	}
	cpu.regs.Set(registers.PC, entry)
	return nil
}

// Registers returns the register bank of the core.
func (cpu *CPU) Registers() *registers.Bank {
	return cpu.regs
}

// MMU returns the memory management unit of the core.
func (cpu *CPU) MMU() *mmu.MMU {
	return cpu.mmu
}

// CP15 returns the system control coprocessor of the core.
func (cpu *CPU) CP15() *cp15.CP15 {
	return cpu.cp15
}

// Exceptions returns the exception controller of the core.
func (cpu *CPU) Exceptions() *exceptions.Controller {
	return cpu.exc
}

// AttachCoprocessor connects a coprocessor with the specified number. A nil
// coprocessor detaches the coprocessor. Coprocessor 15 is always the system
// control coprocessor and cannot be replaced.
func (cpu *CPU) AttachCoprocessor(number int, cp coproc.Coprocessor) {
	if number < 0 || number >= len(cpu.coprocs) || number == cp15.Number {
		panic(fmt.Sprintf("ARM: cannot attach coprocessor %d", number))
	}
	cpu.coprocs[number] = cp
}

// Instructions returns the number of instructions executed since reset.
func (cpu *CPU) Instructions() uint64 {
	return cpu.instructions
}

// Waiting returns true if the core is waiting for an interrupt.
func (cpu *CPU) Waiting() bool {
	return cpu.waiting
}

// Idle returns true if the core is waiting for an interrupt and no interrupt
// line is asserted. Stepping an idle core has no effect.
func (cpu *CPU) Idle() bool {
	return cpu.waiting && !cpu.irq.Asserted() && !cpu.fiq.Asserted()
}

// ExecutingPC returns the address of the most recently fetched instruction.
func (cpu *CPU) ExecutingPC() uint32 {
	return cpu.executingPC
}

func (cpu *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("core %d: last instruction %08x (%s) at %08x\n", cpu.id, cpu.opcode, conditionNames[cpu.opcode>>28], cpu.executingPC))
	s.WriteString(cpu.regs.String())
	s.WriteString("\n")
	s.WriteString(cpu.mmu.String())
	s.WriteString("\n")
	s.WriteString(cpu.cp15.String())
	return s.String()
}

func (cpu *CPU) updatePrefs() {
	cpu.abortOnInvalidAddress = cpu.prefs.AbortOnInvalidAddress.Get().(bool)
	cpu.pulse = prefsPulse
}

// raise a synchronous exception. the instruction being executed is abandoned
// and the PC is not advanced
func (cpu *CPU) raise(kind exceptions.Kind, reason string) {
	cpu.excepted = true
	cpu.exc.Raise(kind, reason)
}

// raise IRQ and FIQ exceptions if the interrupt lines are asserted and the
// interrupts are not masked
func (cpu *CPU) pollInterrupts() {
	if !cpu.regs.F() && !cpu.exc.Pending(exceptions.FIQ) && cpu.fiq.Asserted() {
		cpu.exc.Raise(exceptions.FIQ, "FIQ line asserted")
	}
	if !cpu.regs.I() && !cpu.exc.Pending(exceptions.IRQ) && cpu.irq.Asserted() {
		cpu.exc.Raise(exceptions.IRQ, "IRQ line asserted")
	}
}

// Step executes a single instruction. Any exception raised during the
// instruction, or any interrupt that was asserted before the instruction was
// fetched, is serviced before the function returns.
//
// Errors returned by Step() are fatal and the core should not be stepped
// again without a reset.
func (cpu *CPU) Step() error {
	cpu.excepted = false
	cpu.executionError = nil

	cpu.pulse--
	if cpu.pulse <= 0 {
		cpu.updatePrefs()
	}

	// an interrupt that lost priority to an abort in the previous step
	if _, err := cpu.exc.ServiceOne(); err != nil {
		return err
	}

	if cpu.waiting {
		if !cpu.irq.Asserted() && !cpu.fiq.Asserted() {
			return nil
		}
		cpu.waiting = false
	}

	cpu.pollInterrupts()

	if cpu.regs.T() {
		return curated.Errorf(ThumbNotSupported, cpu.regs.Get(registers.PC))
	}

	pc := cpu.regs.Get(registers.PC)
	cpu.executingPC = pc

	opcode, ok := cpu.fetch(pc)
	if ok {
		cpu.opcode = opcode
		cpu.execute(opcode)
	}

	if cpu.executionError != nil {
		return cpu.executionError
	}

	if !cpu.regs.Jumped() && !cpu.excepted {
		cpu.regs.Set(registers.PC, pc+4)
	}
	cpu.regs.ClearJump()

	if ok && !cpu.excepted {
		cpu.instructions++
	}

	if cpu.cp15.WaitForInterrupt() {
		cpu.waiting = true
	}

	cpu.yieldToInterrupt()

	_, err := cpu.exc.ServiceOne()
	return err
}

// an interrupt polled before the instruction was fetched takes the place of
// a lower priority synchronous exception raised by that instruction. the PC
// has not been advanced so the instruction is executed again on return from
// the interrupt handler. a data abort is still serviced before the interrupt
func (cpu *CPU) yieldToInterrupt() {
	if !cpu.excepted {
		return
	}
	if !cpu.exc.Pending(exceptions.FIQ) && !cpu.exc.Pending(exceptions.IRQ) {
		return
	}
	for _, k := range []exceptions.Kind{exceptions.PrefetchAbort, exceptions.UndefinedInstruction, exceptions.SoftwareInterrupt} {
		if cpu.exc.Discard(k) {
			logger.Logf(cpu.prefs, "ARM", "core %d: %v discarded in favour of interrupt (pc=%08x)", cpu.id, k, cpu.executingPC)
		}
	}
}
