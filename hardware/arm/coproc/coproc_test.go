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

package coproc_test

import (
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/arm/coproc"
	"github.com/jetsetilly/arm5emu/test"
)

func TestRegID(t *testing.T) {
	ids := make(map[uint32]bool)
	for crn := uint32(0); crn < 16; crn++ {
		for op1 := uint32(0); op1 < 8; op1++ {
			for crm := uint32(0); crm < 16; crm++ {
				for op2 := uint32(0); op2 < 8; op2++ {
					id := coproc.RegID(crn, op1, crm, op2)
					test.ExpectFailure(t, ids[id])
					ids[id] = true
				}
			}
		}
	}
	test.ExpectEquality(t, coproc.RegString(coproc.RegID(7, 0, 10, 3)), "c7, 0, c10, 3")
}
