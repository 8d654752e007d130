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
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/arm5emu/prefs"
)

// Address is a 32 bit address preference. It is stored on disk in hexadecimal.
type Address struct {
	*prefs.Generic
	value atomic.Uint32
}

func newAddress() *Address {
	a := &Address{}
	a.Generic = prefs.NewGeneric(
		func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				a.value.Store(0)
				return nil
			}
			v, err := strconv.ParseUint(s, 0, 32)
			if err != nil {
				return fmt.Errorf("address: %w", err)
			}
			a.value.Store(uint32(v))
			return nil
		},
		func() string {
			return fmt.Sprintf("0x%08x", a.value.Load())
		},
	)
	return a
}

// Value returns the address as a uint32.
func (a *Address) Value() uint32 {
	return a.value.Load()
}

// BoardPreferences are the preferences for the platform surrounding the cores.
type BoardPreferences struct {
	dsk *prefs.Disk

	// physical address and size of RAM
	RAMOrigin *Address
	RAMSize   prefs.Int

	// physical address at which the boot image is loaded. execution begins
	// at this address
	LoadAddress *Address

	// number of ARM cores. the first core is the master core
	Cores prefs.Int
}

func (p *BoardPreferences) String() string {
	return p.dsk.String()
}

func newBoardPreferences(path string) (*BoardPreferences, error) {
	p := &BoardPreferences{
		RAMOrigin:   newAddress(),
		LoadAddress: newAddress(),
	}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.board.ramOrigin", p.RAMOrigin)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.board.ramSize", &p.RAMSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.board.loadAddress", p.LoadAddress)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.board.cores", &p.Cores)
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
func (p *BoardPreferences) SetDefaults() {
	p.RAMOrigin.Set("0x80000000")
	p.RAMSize.Set(0x02000000)
	p.LoadAddress.Set("0x80008000")
	p.Cores.Set(1)
}

// Load current board preferences from disk.
func (p *BoardPreferences) Load() error {
	return load(p.dsk)
}

// Save current board preferences to disk.
func (p *BoardPreferences) Save() error {
	return p.dsk.Save()
}
