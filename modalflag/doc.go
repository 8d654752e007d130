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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, arguments are given with NewArgs() and then Parse() is
// called with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MONITOR", "VERSION")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// After a successful Parse() the selected mode is returned by Mode(). The
// first listed sub-mode is the default and is selected when the first
// argument does not name a sub-mode. Sub-mode comparisons are case
// insensitive.
//
// Once a mode has been selected, NewMode() prepares the Modes instance for
// the flags of that mode. Flags are added with the Add*() functions and
// parsed with another call to Parse(). The Path() function returns the chain
// of modes that have been selected, separated by a slash.
package modalflag
