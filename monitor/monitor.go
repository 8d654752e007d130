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

package monitor

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/board"
	"github.com/jetsetilly/arm5emu/hardware/interrupts"
	"github.com/jetsetilly/arm5emu/logger"
	"github.com/jetsetilly/arm5emu/resources"
)

// Sentinal error patterns.
const (
	MonitorError = "monitor: %v"
)

// Input is the source of key presses for the monitor.
type Input interface {
	ReadKey() (byte, error)
}

// the number of log entries printed by the log command
const logTail = 10

// Monitor is an interactive controller for a board.
type Monitor struct {
	brd    *board.Board
	input  Input
	output io.Writer

	// currently selected core
	core int

	// one interrupt line per core, connected to the IRQ aggregator of the
	// core
	lines []*interrupts.Line

	// keys read from the input. closed when the input returns an error
	keys chan byte
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The board must have been setup.
func NewMonitor(brd *board.Board, input Input, output io.Writer) (*Monitor, error) {
	if len(brd.Cores) == 0 {
		return nil, curated.Errorf(MonitorError, curated.Errorf(board.NotSetup))
	}

	mon := &Monitor{
		brd:    brd,
		input:  input,
		output: output,
		keys:   make(chan byte),
	}

	for i := range brd.Cores {
		l := interrupts.NewLine(fmt.Sprintf("monitor%d", i))
		if err := brd.ConnectIRQ(i, l); err != nil {
			return nil, curated.Errorf(MonitorError, err)
		}
		mon.lines = append(mon.lines, l)
	}

	return mon, nil
}

func (mon *Monitor) print(s string, a ...any) {
	_, _ = io.WriteString(mon.output, fmt.Sprintf(s, a...))
}

// Run the monitor until the quit key is pressed or until the input returns
// an error. A fatal error from a core ends the monitor and is returned.
func (mon *Monitor) Run() error {
	go func() {
		defer close(mon.keys)
		for {
			k, err := mon.input.ReadKey()
			if err != nil {
				return
			}
			mon.keys <- k
		}
	}()

	mon.help()

	for {
		mon.print("[%d] %08x > ", mon.core, mon.brd.Cores[mon.core].ExecutingPC())

		k, ok := <-mon.keys
		if !ok {
			mon.print("\n")
			return nil
		}
		mon.print("%c\n", k)

		quit, err := mon.command(k)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// run a single command. returns true if the monitor should quit
func (mon *Monitor) command(k byte) (bool, error) {
	switch k {
	case 'q':
		return true, nil

	case 's':
		if err := mon.brd.Step(mon.core); err != nil {
			mon.print("%v\n", err)
			return false, err
		}
		mon.print("%s\n", mon.brd.Cores[mon.core].Registers().String())

	case 'c':
		return mon.run()

	case 'r':
		mon.print("%s\n", mon.brd.Cores[mon.core].String())

	case 'n':
		mon.core = (mon.core + 1) % len(mon.brd.Cores)
		mon.print("core %d selected\n", mon.core)

	case 'i':
		l := mon.lines[mon.core]
		if l.IsAssert() {
			l.Deassert()
			mon.print("%s deasserted\n", l.IRQMessage())
		} else {
			l.Assert()
			mon.print("%s asserted\n", l.IRQMessage())
		}

	case 'v':
		fn, err := mon.viz()
		if err != nil {
			mon.print("%v\n", err)
		} else {
			mon.print("core state written to %s\n", fn)
		}

	case 'l':
		logger.Tail(mon.output, logTail)

	case 'h', '?':
		mon.help()

	case '\n', '\r':

	default:
		mon.print("unknown command (h for help)\n")
	}

	return false, nil
}

// run the board until a key is pressed or until the board stops
func (mon *Monitor) run() (bool, error) {
	if err := mon.brd.Start(); err != nil {
		return false, err
	}
	mon.print("running. press any key to stop\n")

	done := make(chan error, 1)
	go func() {
		done <- mon.brd.Wait()
	}()

	var quit bool

	select {
	case err := <-done:
		if err != nil {
			mon.print("%v\n", err)
			return false, err
		}
	case _, ok := <-mon.keys:
		quit = !ok
		mon.brd.Stop()
		if err := <-done; err != nil {
			mon.print("%v\n", err)
			return false, err
		}
	}

	mon.print("stopped after %d instructions\n", mon.brd.Cores[mon.core].Instructions())

	return quit, nil
}

// write a graphviz representation of the selected core's state
func (mon *Monitor) viz() (string, error) {
	fn, err := resources.JoinPath(resources.UniqueFilename("viz", fmt.Sprintf("core%d", mon.core)) + ".dot")
	if err != nil {
		return "", curated.Errorf(MonitorError, err)
	}

	f, err := os.Create(fn)
	if err != nil {
		return "", curated.Errorf(MonitorError, err)
	}
	defer f.Close()

	cpu := mon.brd.Cores[mon.core]
	memviz.Map(f, cpu.Registers(), cpu.MMU())

	return fn, nil
}

func (mon *Monitor) help() {
	mon.print("s step, c continue, r registers, n next core, i interrupt, v viz, l log, h help, q quit\n")
}
