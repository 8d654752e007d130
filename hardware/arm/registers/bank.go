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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/arm5emu/curated"
)

// Sentinal error patterns.
const (
	InvalidMode = "registers: invalid mode (%#02x)"
	NoSPSR      = "registers: no SPSR in %v mode"
)

// PC is the register number of the program counter.
const PC = 15

// SP and LR are the register numbers of the stack pointer and link register.
const (
	SP = 13
	LR = 14
)

// offset of the PC as seen by an executing instruction.
const pipelineOffset = 8

// storage slots. the user registers occupy the first sixteen slots and the
// banked registers follow.
const (
	slotFIQ   = 16 // r8 to r14
	slotIRQ   = 23 // r13 and r14
	slotSVC   = 25
	slotABT   = 27
	slotUND   = 29
	numSlots  = 31
	numShadow = 5
)

// the (mode, register) to storage slot lookup table
var lookup [numModes][16]int

// the mode to SPSR slot lookup. -1 for modes without an SPSR
var spsrLookup [numModes]int

func init() {
	for m := range lookup {
		for r := range lookup[m] {
			lookup[m][r] = r
		}
	}

	fiq := ModeFIQ.index()
	for r := 8; r <= 14; r++ {
		lookup[fiq][r] = slotFIQ + r - 8
	}

	for _, b := range []struct {
		mode Mode
		slot int
	}{
		{mode: ModeIRQ, slot: slotIRQ},
		{mode: ModeSVC, slot: slotSVC},
		{mode: ModeABT, slot: slotABT},
		{mode: ModeUND, slot: slotUND},
	} {
		lookup[b.mode.index()][SP] = b.slot
		lookup[b.mode.index()][LR] = b.slot + 1
	}

	for m := range spsrLookup {
		spsrLookup[m] = -1
	}
	spsrLookup[ModeFIQ.index()] = 0
	spsrLookup[ModeIRQ.index()] = 1
	spsrLookup[ModeSVC.index()] = 2
	spsrLookup[ModeABT.index()] = 3
	spsrLookup[ModeUND.index()] = 4
}

// Bank is the complete register file of a single ARM core. It is not safe for
// concurrent use. Each core owns its own Bank.
type Bank struct {
	slots [numSlots]uint32
	spsr  [numShadow]uint32
	cpsr  uint32

	// index into lookup table for current mode. kept in step with the mode
	// bits of cpsr
	mode int

	// the PC has been written through SetSeen() during the current instruction
	jumped bool
}

// NewBank is the preferred method of initialisation for the Bank type. The
// bank is initialised as though the core has been reset.
func NewBank() *Bank {
	b := &Bank{}
	b.Reset()
	return b
}

// Reset all registers to zero and the CPSR to SVC mode with interrupts
// disabled.
func (b *Bank) Reset() {
	b.slots = [numSlots]uint32{}
	b.spsr = [numShadow]uint32{}
	b.cpsr = uint32(ModeSVC) | FlagI | FlagF
	b.mode = ModeSVC.index()
	b.jumped = false
}

// Get returns the raw value of register n for the current mode.
func (b *Bank) Get(n int) uint32 {
	return b.slots[lookup[b.mode][n]]
}

// Set the raw value of register n for the current mode. Writing the PC with
// this function does not mark a jump.
func (b *Bank) Set(n int, v uint32) {
	b.slots[lookup[b.mode][n]] = v
}

// GetSeen returns the value of register n as seen by an executing
// instruction.
func (b *Bank) GetSeen(n int) uint32 {
	if n == PC {
		return b.slots[PC] + pipelineOffset
	}
	return b.Get(n)
}

// SetSeen sets register n as an executing instruction would. Writing the PC
// marks a jump.
func (b *Bank) SetSeen(n int, v uint32) {
	b.Set(n, v)
	if n == PC {
		b.jumped = true
	}
}

// GetUser returns register n from the USR mode bank regardless of the current
// mode.
func (b *Bank) GetUser(n int) uint32 {
	if n == PC {
		return b.slots[PC] + pipelineOffset
	}
	return b.slots[lookup[0][n]]
}

// SetUser sets register n in the USR mode bank regardless of the current
// mode.
func (b *Bank) SetUser(n int, v uint32) {
	b.slots[lookup[0][n]] = v
	if n == PC {
		b.jumped = true
	}
}

// Jumped returns true if the PC has been written through SetSeen() since the
// last call to ClearJump().
func (b *Bank) Jumped() bool {
	return b.jumped
}

// ClearJump forgets that the PC has been written.
func (b *Bank) ClearJump() {
	b.jumped = false
}

// CPSR returns the current program status register.
func (b *Bank) CPSR() uint32 {
	return b.cpsr
}

// SetCPSR sets the current program status register. The mode bits must
// describe a valid mode.
func (b *Bank) SetCPSR(v uint32) error {
	m := Mode(v & ModeMask)
	idx := m.index()
	if idx < 0 {
		return curated.Errorf(InvalidMode, uint32(m))
	}
	b.cpsr = v
	b.mode = idx
	return nil
}

// SPSR returns the saved program status register of the current mode.
func (b *Bank) SPSR() (uint32, error) {
	s := spsrLookup[b.mode]
	if s < 0 {
		return 0, curated.Errorf(NoSPSR, b.Mode())
	}
	return b.spsr[s], nil
}

// SetSPSR sets the saved program status register of the current mode.
func (b *Bank) SetSPSR(v uint32) error {
	s := spsrLookup[b.mode]
	if s < 0 {
		return curated.Errorf(NoSPSR, b.Mode())
	}
	b.spsr[s] = v
	return nil
}

// BankedSPSR returns the saved program status register of the specified mode.
func (b *Bank) BankedSPSR(m Mode) (uint32, error) {
	if !m.Valid() {
		return 0, curated.Errorf(InvalidMode, uint32(m))
	}
	s := spsrLookup[m.index()]
	if s < 0 {
		return 0, curated.Errorf(NoSPSR, m)
	}
	return b.spsr[s], nil
}

// SetBankedSPSR sets the saved program status register of the specified mode.
func (b *Bank) SetBankedSPSR(m Mode, v uint32) error {
	if !m.Valid() {
		return curated.Errorf(InvalidMode, uint32(m))
	}
	s := spsrLookup[m.index()]
	if s < 0 {
		return curated.Errorf(NoSPSR, m)
	}
	b.spsr[s] = v
	return nil
}

// Mode returns the current processor mode.
func (b *Bank) Mode() Mode {
	return Mode(b.cpsr & ModeMask)
}

// SetMode changes the processor mode. The other bits of the CPSR are
// unchanged.
func (b *Bank) SetMode(m Mode) error {
	return b.SetCPSR((b.cpsr &^ ModeMask) | uint32(m))
}

func (b *Bank) flag(f uint32) bool {
	return b.cpsr&f == f
}

func (b *Bank) setFlag(f uint32, v bool) {
	if v {
		b.cpsr |= f
	} else {
		b.cpsr &^= f
	}
}

// N returns the negative flag.
func (b *Bank) N() bool { return b.flag(FlagN) }

// Z returns the zero flag.
func (b *Bank) Z() bool { return b.flag(FlagZ) }

// C returns the carry flag.
func (b *Bank) C() bool { return b.flag(FlagC) }

// V returns the overflow flag.
func (b *Bank) V() bool { return b.flag(FlagV) }

// Q returns the saturation flag.
func (b *Bank) Q() bool { return b.flag(FlagQ) }

// I returns true if IRQ interrupts are disabled.
func (b *Bank) I() bool { return b.flag(FlagI) }

// F returns true if FIQ interrupts are disabled.
func (b *Bank) F() bool { return b.flag(FlagF) }

// T returns true if the core is in Thumb state.
func (b *Bank) T() bool { return b.flag(FlagT) }

// SetN sets the negative flag.
func (b *Bank) SetN(v bool) { b.setFlag(FlagN, v) }

// SetZ sets the zero flag.
func (b *Bank) SetZ(v bool) { b.setFlag(FlagZ, v) }

// SetC sets the carry flag.
func (b *Bank) SetC(v bool) { b.setFlag(FlagC, v) }

// SetV sets the overflow flag.
func (b *Bank) SetV(v bool) { b.setFlag(FlagV, v) }

// SetQ sets the saturation flag.
func (b *Bank) SetQ(v bool) { b.setFlag(FlagQ, v) }

// SetI sets the IRQ disable bit.
func (b *Bank) SetI(v bool) { b.setFlag(FlagI, v) }

// SetF sets the FIQ disable bit.
func (b *Bank) SetF(v bool) { b.setFlag(FlagF, v) }

// SetT sets the Thumb state bit.
func (b *Bank) SetT(v bool) { b.setFlag(FlagT, v) }

// SetNZ sets the negative and zero flags according to the 32 bit result.
func (b *Bank) SetNZ(result uint32) {
	b.SetN(result&0x80000000 == 0x80000000)
	b.SetZ(result == 0)
}

func (b *Bank) String() string {
	s := strings.Builder{}
	for i := 0; i < 16; i++ {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString("\t\t")
			}
		}
		s.WriteString(fmt.Sprintf("R%-2d: %08x", i, b.Get(i)))
	}
	s.WriteString(fmt.Sprintf("\nCPSR: %08x [%s]", b.cpsr, PSRString(b.cpsr)))
	if spsr, err := b.SPSR(); err == nil {
		s.WriteString(fmt.Sprintf("\tSPSR: %08x [%s]", spsr, PSRString(spsr)))
	}
	return s.String()
}
