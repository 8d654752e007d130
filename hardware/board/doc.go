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

// Package board assembles the emulated platform. A board consists of an
// address space, RAM, one or more ARM cores and the interrupt lines of each
// core.
//
// Each core runs in its own goroutine under the control of a Runner. The bus
// is the only resource shared between cores.
//
//	p, _ := preferences.NewPreferences(resources.JoinPath(preferences.DefaultPrefsFile))
//	brd := board.NewBoard(p)
//	ld := loader.NewLoader("kernel.bin")
//	err := brd.Setup(&ld)
//	err = brd.Start()
//	err = brd.Wait()
package board
