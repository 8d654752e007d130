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

package board

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm"
	"github.com/jetsetilly/arm5emu/hardware/arm/exceptions"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/hardware/interrupts"
	"github.com/jetsetilly/arm5emu/hardware/loader"
	"github.com/jetsetilly/arm5emu/hardware/memory"
	"github.com/jetsetilly/arm5emu/hardware/preferences"
	"github.com/jetsetilly/arm5emu/logger"
)

// Sentinal error patterns.
const (
	SetupError = "board: setup: %v"
	NotSetup   = "board: board has not been setup"
	NoCore     = "board: no core %d"
)

// the size of the RAM placed at the vector table if main RAM does not cover
// it
const vectorPageSize = 0x1000

// Board is the top level of the emulated platform.
type Board struct {
	Prefs *preferences.Preferences

	Bus *bus.Bus
	RAM *memory.RAM

	// RAM at the exception vector table. will be nil if main RAM covers the
	// vector table
	Vectors *memory.RAM

	Cores []*arm.CPU

	// interrupt aggregators for each core. sources are connected with
	// ConnectIRQ() and ConnectFIQ()
	IRQ []*interrupts.Aggregator
	FIQ []*interrupts.Aggregator

	runners []*Runner
}

// NewBoard is the preferred method of initialisation for the Board type.
func NewBoard(prefs *preferences.Preferences) *Board {
	return &Board{
		Prefs: prefs,
	}
}

func (brd *Board) String() string {
	s := strings.Builder{}
	for _, c := range brd.Cores {
		s.WriteString(c.String())
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

// Setup creates the bus, RAM and cores of the board according to the
// preferences. If the loader is not nil the image is installed at the load
// address.
//
// Every core is reset and will begin execution at the entry address with the
// initial register values in args.
func (brd *Board) Setup(ld *loader.Loader, entry uint32, args ...uint32) error {
	brd.Bus = bus.NewBus()

	origin := brd.Prefs.Board.RAMOrigin.Value()
	size := uint32(brd.Prefs.Board.RAMSize.Get().(int))

	var err error

	brd.RAM, err = memory.NewRAM(size)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}
	err = brd.Bus.AddSlave(brd.RAM, origin, origin+size-1)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}

	// RAM for the exception vectors
	var vectors uint32
	if brd.Prefs.ARM.HighVectors.Get().(bool) {
		vectors = exceptions.HighVectorBase
	}
	if _, _, ok := brd.Bus.FindSlave(vectors, vectors+vectorPageSize-1); !ok {
		brd.Vectors, err = memory.NewRAM(vectorPageSize)
		if err != nil {
			return curated.Errorf(SetupError, err)
		}
		err = brd.Bus.AddSlave(brd.Vectors, vectors, vectors+vectorPageSize-1)
		if err != nil {
			return curated.Errorf(SetupError, err)
		}
	}

	if ld != nil {
		if err := ld.Load(); err != nil {
			return curated.Errorf(SetupError, err)
		}
		if err := ld.Install(brd.Bus, brd.Prefs.Board.LoadAddress.Value()); err != nil {
			return curated.Errorf(SetupError, err)
		}
	}

	numCores := brd.Prefs.Board.Cores.Get().(int)
	if numCores < 1 {
		return curated.Errorf(SetupError, fmt.Sprintf("invalid number of cores (%d)", numCores))
	}

	brd.Cores = brd.Cores[:0]
	brd.IRQ = brd.IRQ[:0]
	brd.FIQ = brd.FIQ[:0]
	brd.runners = brd.runners[:0]

	limit := brd.Prefs.ARM.InstructionLimit.Get().(int)

	for id := 0; id < numCores; id++ {
		cpu := arm.NewCPU(id, brd.Prefs.ARM, brd.Bus)
		brd.Bus.AddMaster(cpu)

		irq := interrupts.NewAggregator()
		fiq := interrupts.NewAggregator()
		cpu.SetInterrupts(irq, fiq)

		if err := cpu.SetInitialRegisters(entry, args...); err != nil {
			return curated.Errorf(SetupError, err)
		}

		brd.Cores = append(brd.Cores, cpu)
		brd.IRQ = append(brd.IRQ, irq)
		brd.FIQ = append(brd.FIQ, fiq)
		r := NewRunner(cpu, limit)
		r.WakeOn(irq, fiq)
		brd.runners = append(brd.runners, r)
	}

	logger.Logf(logger.Allow, "board", "%d core(s). %d bytes RAM at %08x. entry at %08x", numCores, size, origin, entry)

	return nil
}

// ConnectIRQ connects an interrupt source to the IRQ line of the core.
func (brd *Board) ConnectIRQ(core int, src interrupts.Source) error {
	if core < 0 || core >= len(brd.IRQ) {
		return curated.Errorf(NoCore, core)
	}
	brd.IRQ[core].SetRaisedInterrupt(src)
	return nil
}

// ConnectFIQ connects an interrupt source to the FIQ line of the core.
func (brd *Board) ConnectFIQ(core int, src interrupts.Source) error {
	if core < 0 || core >= len(brd.FIQ) {
		return curated.Errorf(NoCore, core)
	}
	brd.FIQ[core].SetRaisedInterrupt(src)
	return nil
}

// Start every core in its own goroutine.
func (brd *Board) Start() error {
	if len(brd.runners) == 0 {
		return curated.Errorf(NotSetup)
	}
	for _, r := range brd.runners {
		if err := r.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Stop every core. Stop does not wait for the cores to stop.
func (brd *Board) Stop() {
	for _, r := range brd.runners {
		r.Halt()
	}
}

// Running returns true if any core is running.
func (brd *Board) Running() bool {
	for _, r := range brd.runners {
		if r.Running() {
			return true
		}
	}
	return false
}

// Wait for every core to stop. A core that stops with an error causes every
// other core to be stopped. The first error is returned.
func (brd *Board) Wait() error {
	errs := make(chan error, len(brd.runners))

	for _, r := range brd.runners {
		go func(r *Runner) {
			err := r.Wait()
			if err != nil {
				brd.Stop()
			}
			errs <- err
		}(r)
	}

	var first error
	for range brd.runners {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Sleeping returns true if the core is idle and waiting to be woken by an
// interrupt line.
func (brd *Board) Sleeping(core int) bool {
	if core < 0 || core >= len(brd.runners) {
		return false
	}
	return brd.runners[core].Sleeping()
}

// Step a single core. The board must not be running.
func (brd *Board) Step(core int) error {
	if core < 0 || core >= len(brd.Cores) {
		return curated.Errorf(NoCore, core)
	}
	return brd.Cores[core].Step()
}
