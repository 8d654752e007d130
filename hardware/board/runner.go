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
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/interrupts"
	"github.com/jetsetilly/arm5emu/logger"
)

// Sentinal error patterns.
const (
	AlreadyRunning   = "board: core %d is already running"
	InstructionLimit = "board: core %d reached instruction limit (%d)"
)

// Runner executes a core in its own goroutine until it is halted or until
// the core returns an error.
type Runner struct {
	core Core

	// maximum number of instructions to execute. zero means no limit
	limit uint64

	// halt is checked at the top of every step
	halt atomic.Bool

	crit    sync.Mutex
	done    *sync.Cond
	running bool
	err     error

	// an idle core sleeps on the wake condition until one of the interrupt
	// lines it is woken by is asserted or until the runner is halted
	wake      *sync.Cond
	signalled bool
	sleeping  bool
	wakeOn    []*interrupts.Aggregator
}

// NewRunner is the preferred method of initialisation for the Runner type.
func NewRunner(core Core, limit int) *Runner {
	r := &Runner{
		core: core,
	}
	if limit > 0 {
		r.limit = uint64(limit)
	}
	r.done = sync.NewCond(&r.crit)
	r.wake = sync.NewCond(&r.crit)
	return r
}

// WakeOn adds the runner as a waker of the aggregators. An idle core sleeps
// only if every aggregator is signalling. Otherwise the idle core is polled.
func (r *Runner) WakeOn(aggs ...*interrupts.Aggregator) {
	for _, agg := range aggs {
		agg.AddWaker(r)
	}
	r.crit.Lock()
	r.wakeOn = append(r.wakeOn, aggs...)
	r.crit.Unlock()
}

// Wake implements the interrupts.Waker interface.
func (r *Runner) Wake() {
	r.crit.Lock()
	r.signalled = true
	r.wake.Broadcast()
	r.crit.Unlock()
}

// Sleeping returns true if the core is idle and the runner is waiting to be
// woken.
func (r *Runner) Sleeping() bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.sleeping
}

// Start the core. Returns an error if the core is already running.
func (r *Runner) Start() error {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.running {
		return curated.Errorf(AlreadyRunning, r.core.MasterID())
	}

	r.running = true
	r.err = nil
	r.signalled = false
	r.halt.Store(false)

	go r.run()

	return nil
}

// Halt the core. The core will stop at the start of the next step. Halt does
// not wait for the core to stop.
func (r *Runner) Halt() {
	r.halt.Store(true)
	r.Wake()
}

// Running returns true if the core goroutine is active.
func (r *Runner) Running() bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.running
}

// Wait blocks until the core has stopped. Returns the error that stopped the
// core, if any.
func (r *Runner) Wait() error {
	r.crit.Lock()
	defer r.crit.Unlock()
	for r.running {
		r.done.Wait()
	}
	return r.err
}

func (r *Runner) run() {
	var err error

	for !r.halt.Load() {
		err = r.core.Step()
		if err != nil {
			logger.Logf(logger.Allow, "board", "core %d: %v", r.core.MasterID(), err)
			logger.Log(logger.Allow, "board", r.core.String())
			break
		}

		if r.limit > 0 && r.core.Instructions() >= r.limit {
			err = curated.Errorf(InstructionLimit, r.core.MasterID(), r.limit)
			logger.Log(logger.Allow, "board", err)
			break
		}

		if r.core.Idle() {
			r.sleep()
		}
	}

	r.crit.Lock()
	r.running = false
	r.err = err
	r.done.Broadcast()
	r.crit.Unlock()
}

// block until the runner is woken or halted. a wake that happened since the
// previous sleep is not lost
func (r *Runner) sleep() {
	if !r.canSleep() {
		runtime.Gosched()
		return
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	r.sleeping = true
	for !r.signalled && !r.halt.Load() {
		r.wake.Wait()
	}
	r.sleeping = false
	r.signalled = false
}

// the idle core can sleep only if every interrupt source that can wake it
// signals when asserted
func (r *Runner) canSleep() bool {
	r.crit.Lock()
	defer r.crit.Unlock()

	if len(r.wakeOn) == 0 {
		return false
	}
	for _, agg := range r.wakeOn {
		if !agg.Signalling() {
			return false
		}
	}
	return true
}
