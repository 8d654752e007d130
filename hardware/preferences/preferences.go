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

// Package preferences contains the user preferences for the emulated hardware.
// Preferences are grouped by component and stored on disk using the prefs
// package. Values on the command line stack (see prefs.PushCommandLineStack())
// take precedence over the values on disk when the preferences are loaded.
package preferences

import "github.com/jetsetilly/arm5emu/prefs"

// DefaultPrefsFile is the name of the preferences file in the resources
// directory.
const DefaultPrefsFile = "preferences"

// Preferences collates all the preference groups used by the hardware.
type Preferences struct {
	ARM   *ARMPreferences
	Board *BoardPreferences
}

func (p *Preferences) String() string {
	return p.ARM.String() + p.Board.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. All groups are stored in the file at path.
func NewPreferences(path string) (*Preferences, error) {
	var err error

	p := &Preferences{}

	p.ARM, err = newARMPreferences(path)
	if err != nil {
		return nil, err
	}

	p.Board, err = newBoardPreferences(path)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.ARM.SetDefaults()
	p.Board.SetDefaults()
}

// Load all preference groups from disk.
func (p *Preferences) Load() error {
	if err := p.ARM.Load(); err != nil {
		return err
	}
	return p.Board.Load()
}

// Save all preference groups to disk.
func (p *Preferences) Save() error {
	if err := p.ARM.Save(); err != nil {
		return err
	}
	return p.Board.Save()
}

// load the disk values. a missing preferences file is not an error
func load(dsk *prefs.Disk) error {
	return dsk.Load(false)
}
