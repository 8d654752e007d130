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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/hardware/memory"
	"github.com/jetsetilly/arm5emu/test"
)

func TestRAMSize(t *testing.T) {
	_, err := memory.NewRAM(0)
	test.ExpectSuccess(t, curated.Is(err, memory.InvalidSize))
	_, err = memory.NewRAM(10)
	test.ExpectFailure(t, err)

	r, err := memory.NewRAM(64)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size(), 64)
	test.ExpectSuccess(t, r.TryRead(60, 4))
	test.ExpectFailure(t, r.TryRead(61, 4))
	test.ExpectFailure(t, r.TryWrite(64, 1))
}

func TestRAMLanes(t *testing.T) {
	r, err := memory.NewRAM(64)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, r.Write32(0x10, 0xfedc5432))
	v8, _ := r.Read8(0x11)
	test.ExpectEquality(t, v8, 0x54)
	v8, _ = r.Read8(0x13)
	test.ExpectEquality(t, v8, 0xfe)
	v16, _ := r.Read16(0x12)
	test.ExpectEquality(t, v16, 0xfedc)

	test.ExpectSuccess(t, r.Write8(0x11, 0xf8))
	v32, _ := r.Read32(0x10)
	test.ExpectEquality(t, v32, 0xfedcf832)

	test.ExpectSuccess(t, r.Write16(0x10, 0x1234))
	v32, _ = r.Read32(0x10)
	test.ExpectEquality(t, v32, 0xfedc1234)

	test.ExpectSuccess(t, r.Write64(0x20, 0x0123456789abcdef))
	v32, _ = r.Read32(0x20)
	test.ExpectEquality(t, v32, 0x89abcdef)
	v32, _ = r.Read32(0x24)
	test.ExpectEquality(t, v32, 0x01234567)
	v64, _ := r.Read64(0x20)
	test.ExpectEquality(t, v64, 0x0123456789abcdef)
}

func TestRAMLoad(t *testing.T) {
	r, err := memory.NewRAM(16)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, r.Load(2, []byte{0x01, 0x02, 0x03, 0x04}))
	v32, _ := r.Read32(0)
	test.ExpectEquality(t, v32, 0x02010000)
	v32, _ = r.Read32(4)
	test.ExpectEquality(t, v32, 0x00000403)

	err = r.Load(14, []byte{1, 2, 3})
	test.ExpectSuccess(t, curated.Is(err, memory.LoadOverrun))
}

func TestRAMOnBus(t *testing.T) {
	r, err := memory.NewRAM(0x1000)
	test.DemandSuccess(t, err)

	b := bus.NewBus()
	test.DemandSuccess(t, b.AddSlave(r, 0x80000000, 0x80000fff))

	test.ExpectSuccess(t, b.Write32(0x80000100, 0x11223344))
	v, err := b.Read8(0x80000101)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x33)

	// unaligned word straddles two RAM words
	v32, err := b.ReadUA32(0x80000102)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v32, 0x00001122)

	test.ExpectSuccess(t, b.WriteUA32(0x80000103, 0xaabbccdd))
	v32, _ = b.Read32(0x80000100)
	test.ExpectEquality(t, v32, 0xdd223344)
	v32, _ = b.Read32(0x80000104)
	test.ExpectEquality(t, v32, 0x00aabbcc)

	_, err = b.Read32(0x80001000)
	test.ExpectSuccess(t, curated.Is(err, bus.InvalidAddress))
}

func TestRAMMisaligned(t *testing.T) {
	r, err := memory.NewRAM(0x2000)
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, r.TryRead(0x1004, 8))
	test.ExpectFailure(t, r.TryWrite(0x1004, 8))
	test.ExpectFailure(t, r.TryRead(0x1002, 4))
	test.ExpectFailure(t, r.TryWrite(0x1001, 2))
	test.ExpectFailure(t, r.TryRead(0x1000, 3))
	test.ExpectSuccess(t, r.TryRead(0x1003, 1))
	test.ExpectSuccess(t, r.TryRead(0x1008, 8))

	b := bus.NewBus()
	test.DemandSuccess(t, b.AddSlave(r, 0, 0x1fff))

	test.DemandSuccess(t, b.Write32(0x1000, 0x11111111))
	test.DemandSuccess(t, b.Write32(0x1004, 0x22222222))
	test.DemandSuccess(t, b.Write32(0x1008, 0x33333333))

	// native width accesses that are misaligned are refused
	_, err = b.Read64(0x1004)
	test.ExpectSuccess(t, curated.Is(err, bus.InvalidAddress))
	_, err = b.Read32(0x1002)
	test.ExpectSuccess(t, curated.Is(err, bus.InvalidAddress))
	err = b.Write64(0x1004, 0)
	test.ExpectSuccess(t, curated.Is(err, bus.InvalidAddress))

	// nothing was written by the refused access
	v32, err := b.Read32(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v32, 0x11111111)

	// the unaligned variants decompose the access into bytes
	v64, err := b.ReadUA64(0x1004)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v64, 0x3333333322222222)
	v32, err = b.ReadUA32(0x1002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v32, 0x22221111)

	test.ExpectSuccess(t, b.WriteUA64(0x1004, 0x4444444455555555))
	v32, _ = b.Read32(0x1000)
	test.ExpectEquality(t, v32, 0x11111111)
	v32, _ = b.Read32(0x1004)
	test.ExpectEquality(t, v32, 0x55555555)
	v32, _ = b.Read32(0x1008)
	test.ExpectEquality(t, v32, 0x44444444)
}
