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

// Package prefs facilitates the storage of preferential values in the
// arm5emu system. It is intended to be used by the configuration layer of a
// package, with values added to a Disk instance which is then used to save and
// load values to the file system.
//
// Preferences are stored one per line in the format:
//
//	key :: value
//
// The first line of a preferences file is always the WarningBoilerPlate.
// Values in the file with keys that have not been added to a Disk instance are
// preserved when the file is saved.
//
// The command line stack allows preference values to be overridden for the
// lifetime of a single invocation of the program. When a Disk is loaded, any
// values in the top group of the stack take precedence over the values on
// disk. The stack values are never saved to disk unless the value has been
// explicitly changed.
package prefs
