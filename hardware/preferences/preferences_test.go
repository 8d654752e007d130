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

package preferences_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/preferences"
	"github.com/jetsetilly/arm5emu/prefs"
	"github.com/jetsetilly/arm5emu/test"
)

func TestDefaults(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.ARM.HighVectors.Get().(bool))
	test.ExpectSuccess(t, p.ARM.AbortOnInvalidAddress.Get().(bool))
	test.ExpectEquality(t, p.ARM.InstructionLimit.Get().(int), 0)
	test.ExpectFailure(t, p.ARM.AllowLogging())

	test.ExpectEquality(t, p.Board.RAMOrigin.Value(), uint32(0x80000000))
	test.ExpectEquality(t, p.Board.RAMSize.Get().(int), 0x02000000)
	test.ExpectEquality(t, p.Board.LoadAddress.Value(), uint32(0x80008000))
	test.ExpectEquality(t, p.Board.Cores.Get().(int), 1)
}

func TestSaveAndLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.ARM.HighVectors.Set(true))
	test.ExpectSuccess(t, p.Board.RAMOrigin.Set("0x20000000"))
	test.ExpectSuccess(t, p.Board.Cores.Set(2))
	test.ExpectSuccess(t, p.Save())

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(data), prefs.WarningBoilerPlate))
	test.ExpectSuccess(t, strings.Contains(string(data), "hardware.board.ramOrigin :: 0x20000000"))
	test.ExpectSuccess(t, strings.Contains(string(data), "hardware.arm.highVectors :: true"))

	q, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, q.ARM.HighVectors.Get().(bool))
	test.ExpectEquality(t, q.Board.RAMOrigin.Value(), uint32(0x20000000))
	test.ExpectEquality(t, q.Board.Cores.Get().(int), 2)
}

func TestCommandLine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	prefs.PushCommandLineStack("hardware.arm.instructionLimit::1000; hardware.board.loadAddress::0x80010000")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.ARM.InstructionLimit.Get().(int), 1000)
	test.ExpectEquality(t, p.Board.LoadAddress.Value(), uint32(0x80010000))
}
