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

package registers

import "strings"

// Bits of the program status registers.
const (
	FlagN uint32 = 1 << 31
	FlagZ uint32 = 1 << 30
	FlagC uint32 = 1 << 29
	FlagV uint32 = 1 << 28
	FlagQ uint32 = 1 << 27
	FlagI uint32 = 1 << 7
	FlagF uint32 = 1 << 6
	FlagT uint32 = 1 << 5

	// the N, Z, C and V flags. also known as the APSR
	FlagsNZCV uint32 = FlagN | FlagZ | FlagC | FlagV

	ModeMask uint32 = 0x1f
)

// PSRString returns a short description of a program status register value.
// Set flags are shown in upper case and clear flags in lower case.
func PSRString(psr uint32) string {
	s := strings.Builder{}
	flag := func(bit uint32, set rune, clear rune) {
		if psr&bit == bit {
			s.WriteRune(set)
		} else {
			s.WriteRune(clear)
		}
	}
	flag(FlagN, 'N', 'n')
	flag(FlagZ, 'Z', 'z')
	flag(FlagC, 'C', 'c')
	flag(FlagV, 'V', 'v')
	flag(FlagQ, 'Q', 'q')
	s.WriteRune(' ')
	flag(FlagI, 'I', 'i')
	flag(FlagF, 'F', 'f')
	flag(FlagT, 'T', 't')
	s.WriteRune(' ')
	s.WriteString(Mode(psr & ModeMask).String())
	return s.String()
}
