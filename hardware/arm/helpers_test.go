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

package arm_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/arm"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/hardware/memory"
	"github.com/jetsetilly/arm5emu/hardware/preferences"
	"github.com/jetsetilly/arm5emu/test"
)

const (
	ramOrigin = 0x80000000
	codeStart = 0x80008000
)

// testBoard is a minimal platform with RAM at ramOrigin and a small amount of
// RAM at address zero for the exception vectors
type testBoard struct {
	t     *testing.T
	prefs *preferences.Preferences
	bus   *bus.Bus
	cpu   *arm.CPU
}

func prepareTestBoard(t *testing.T, ramSize uint32, configure func(p *preferences.Preferences)) *testBoard {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	if configure != nil {
		configure(p)
	}

	b := bus.NewBus()

	ram, err := memory.NewRAM(ramSize)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.AddSlave(ram, ramOrigin, ramOrigin+ramSize-1))

	vectors, err := memory.NewRAM(0x1000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.AddSlave(vectors, 0x00000000, 0x00000fff))

	cpu := arm.NewCPU(0, p.ARM, b)
	test.DemandSuccess(t, cpu.SetInitialRegisters(codeStart))

	return &testBoard{
		t:     t,
		prefs: p,
		bus:   b,
		cpu:   cpu,
	}
}

// write the program at codeStart
func (tb *testBoard) program(opcodes ...uint32) {
	tb.t.Helper()
	for i, o := range opcodes {
		test.DemandSuccess(tb.t, tb.bus.Write32(codeStart+uint32(i*4), o))
	}
}

// step the cpu n times. every step must succeed
func (tb *testBoard) step(n int) {
	tb.t.Helper()
	for i := 0; i < n; i++ {
		test.DemandSuccess(tb.t, tb.cpu.Step())
	}
}

func (tb *testBoard) reg(n int) uint32 {
	return tb.cpu.Registers().Get(n)
}

func (tb *testBoard) setReg(n int, v uint32) {
	tb.cpu.Registers().Set(n, v)
}

func (tb *testBoard) pc() uint32 {
	return tb.cpu.Registers().Get(15)
}

func (tb *testBoard) write32(addr uint32, v uint32) {
	tb.t.Helper()
	test.DemandSuccess(tb.t, tb.bus.Write32(addr, v))
}

func (tb *testBoard) read32(addr uint32) uint32 {
	tb.t.Helper()
	v, err := tb.bus.Read32(addr)
	test.DemandSuccess(tb.t, err)
	return v
}
