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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/test"
)

func TestReset(t *testing.T) {
	b := registers.NewBank()
	test.ExpectEquality(t, b.Mode(), registers.ModeSVC)
	test.ExpectEquality(t, b.CPSR(), 0xd3)
	test.ExpectSuccess(t, b.I())
	test.ExpectSuccess(t, b.F())
	test.ExpectFailure(t, b.T())
}

func TestSeen(t *testing.T) {
	b := registers.NewBank()
	b.Set(registers.PC, 0x80008000)
	test.ExpectEquality(t, b.Get(registers.PC), 0x80008000)
	test.ExpectEquality(t, b.GetSeen(registers.PC), 0x80008008)
	test.ExpectFailure(t, b.Jumped())

	// only the seen accessor marks a jump
	b.Set(registers.PC, 0x80008004)
	test.ExpectFailure(t, b.Jumped())
	b.SetSeen(registers.PC, 0x80009000)
	test.ExpectSuccess(t, b.Jumped())
	test.ExpectEquality(t, b.Get(registers.PC), 0x80009000)
	b.ClearJump()
	test.ExpectFailure(t, b.Jumped())

	// other registers are unaffected by the seen accessor
	b.SetSeen(3, 0x1234)
	test.ExpectEquality(t, b.GetSeen(3), 0x1234)
	test.ExpectFailure(t, b.Jumped())
}

func TestBanking(t *testing.T) {
	b := registers.NewBank()

	test.DemandSuccess(t, b.SetMode(registers.ModeUSR))
	for i := 0; i < 15; i++ {
		b.Set(i, uint32(i))
	}

	// svc banks r13 and r14 only
	test.DemandSuccess(t, b.SetMode(registers.ModeSVC))
	b.Set(registers.SP, 0xaaaa)
	b.Set(registers.LR, 0xbbbb)
	b.Set(12, 0xcccc)
	test.ExpectEquality(t, b.GetUser(registers.SP), 13)
	test.ExpectEquality(t, b.GetUser(registers.LR), 14)
	test.ExpectEquality(t, b.GetUser(12), 0xcccc)

	// fiq banks r8 to r14
	test.DemandSuccess(t, b.SetMode(registers.ModeFIQ))
	for i := 8; i < 15; i++ {
		test.ExpectEquality(t, b.Get(i), 0, i)
		b.Set(i, 0xf000+uint32(i))
	}
	test.ExpectEquality(t, b.Get(7), 7)

	// sys shares the user bank
	test.DemandSuccess(t, b.SetMode(registers.ModeSYS))
	test.ExpectEquality(t, b.Get(registers.SP), 13)
	test.ExpectEquality(t, b.Get(8), 8)
	test.ExpectEquality(t, b.Get(12), 0xcccc)

	test.DemandSuccess(t, b.SetMode(registers.ModeSVC))
	test.ExpectEquality(t, b.Get(registers.SP), 0xaaaa)
	test.ExpectEquality(t, b.Get(registers.LR), 0xbbbb)

	test.DemandSuccess(t, b.SetMode(registers.ModeFIQ))
	test.ExpectEquality(t, b.Get(registers.LR), 0xf00e)

	// every mode shares the PC
	b.Set(registers.PC, 0x100)
	test.DemandSuccess(t, b.SetMode(registers.ModeIRQ))
	test.ExpectEquality(t, b.Get(registers.PC), 0x100)
}

func TestSPSR(t *testing.T) {
	b := registers.NewBank()

	test.ExpectSuccess(t, b.SetSPSR(0x600000d3))
	v, err := b.SPSR()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x600000d3)

	// SPSR is banked
	test.DemandSuccess(t, b.SetMode(registers.ModeABT))
	v, err = b.SPSR()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0)

	v, err = b.BankedSPSR(registers.ModeSVC)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x600000d3)

	for _, m := range []registers.Mode{registers.ModeUSR, registers.ModeSYS} {
		test.DemandSuccess(t, b.SetMode(m))
		_, err = b.SPSR()
		test.ExpectSuccess(t, curated.Is(err, registers.NoSPSR))
		test.ExpectSuccess(t, curated.Is(b.SetSPSR(0), registers.NoSPSR))
	}
}

func TestInvalidMode(t *testing.T) {
	b := registers.NewBank()
	for m := uint32(0); m < 0x20; m++ {
		err := b.SetCPSR(m)
		if registers.Mode(m).Valid() {
			test.ExpectSuccess(t, err, m)
			test.ExpectEquality(t, b.Mode(), registers.Mode(m))
		} else {
			test.ExpectSuccess(t, curated.Is(err, registers.InvalidMode), m)
		}
	}

	// failed mode change leaves CPSR unchanged
	test.DemandSuccess(t, b.SetCPSR(0xf00000d7))
	test.ExpectFailure(t, b.SetMode(registers.Mode(0x14)))
	test.ExpectEquality(t, b.CPSR(), 0xf00000d7)
}

func TestFlags(t *testing.T) {
	b := registers.NewBank()
	b.SetN(true)
	b.SetC(true)
	test.ExpectEquality(t, b.CPSR()&registers.FlagsNZCV, registers.FlagN|registers.FlagC)
	b.SetNZ(0)
	test.ExpectFailure(t, b.N())
	test.ExpectSuccess(t, b.Z())
	b.SetNZ(0x80000000)
	test.ExpectSuccess(t, b.N())
	test.ExpectFailure(t, b.Z())
	test.ExpectEquality(t, registers.PSRString(0xa00000d3), "NzCvq IFt SVC")
}
