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

package statsview

// DefaultAddress is the address used by the stats server if no other address
// is specified.
const DefaultAddress = "localhost:12600"

const url = "/debug/statsview"

// URL returns the full location of the statsview page for the address.
func URL(address string) string {
	if address == "" {
		address = DefaultAddress
	}
	return address + url
}
