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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Packages that want callers to be able to identify an
// error should store the pattern as an exported const string. For example,
// the bus package exports the InvalidAddress pattern:
//
//	const InvalidAddress = "bus: invalid address %08x (%d bytes)"
//
//	err := curated.Errorf(InvalidAddress, addr, 4)
//
//	if curated.Is(err, bus.InvalidAddress) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. The chain is formed by curated errors that have been used
// as placeholder values of other curated errors.
//
//	e := curated.Errorf(bus.InvalidAddress, addr, 4)
//	f := curated.Errorf("ARM: fetch: %v", e)
//
//	curated.Has(f, bus.InvalidAddress) == true
//	curated.Is(f, bus.InvalidAddress) == false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of curated errors as being expected and
// uncurated errors as being unexpected.
//
// The Error() function for curated errors normalises the message chain. The
// chain does not contain duplicate adjacent parts. For example:
//
//	e := curated.Errorf("board: %v", curated.Errorf("board: %v", err))
//
// will print as "board: <err>" and not "board: board: <err>". For the
// purposes of this package, chains are composed of parts separated by the
// sub-string ": ".
package curated
