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

package preferences

import (
	"github.com/jetsetilly/arm5emu/prefs"
)

// ARMPreferences are the preferences for each ARM core.
type ARMPreferences struct {
	dsk *prefs.Disk

	// reset value of the CP15 control register V bit. exception vectors are
	// at 0xffff0000 when set
	HighVectors prefs.Bool

	// an access to a physical address with nothing attached to the bus halts
	// emulation. if false the access is turned into an external abort
	AbortOnInvalidAddress prefs.Bool

	// the number of instructions a core executes before halting. a value of
	// zero means there is no limit
	InstructionLimit prefs.Int

	// log every exception entry. useful but very noisy once an operating
	// system is running
	LogExceptions prefs.Bool
}

func (p *ARMPreferences) String() string {
	return p.dsk.String()
}

func newARMPreferences(path string) (*ARMPreferences, error) {
	p := &ARMPreferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.arm.highVectors", &p.HighVectors)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.arm.abortOnInvalidAddress", &p.AbortOnInvalidAddress)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.arm.instructionLimit", &p.InstructionLimit)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.arm.logExceptions", &p.LogExceptions)
	if err != nil {
		return nil, err
	}
	err = load(p.dsk)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *ARMPreferences) SetDefaults() {
	p.HighVectors.Set(false)
	p.AbortOnInvalidAddress.Set(true)
	p.InstructionLimit.Set(0)
	p.LogExceptions.Set(false)
}

// Load current arm preferences from disk.
func (p *ARMPreferences) Load() error {
	return load(p.dsk)
}

// Save current arm preferences to disk.
func (p *ARMPreferences) Save() error {
	return p.dsk.Save()
}

// AllowLogging implements the logger.Permission interface. Logging of
// exception entry is allowed when the LogExceptions preference is set.
func (p *ARMPreferences) AllowLogging() bool {
	return p.LogExceptions.Get().(bool)
}
