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

package arm_test

import (
	"testing"

	"github.com/jetsetilly/arm5emu/hardware/arm/registers"
	"github.com/jetsetilly/arm5emu/test"
)

func TestEndToEndALU(t *testing.T) {
	tb := prepareTestBoard(t, 0x02000000, nil)

	tb.program(
		0xe3a00001, // MOV r0, #1
		0xe3a01002, // MOV r1, #2
		0xe0902001, // ADDS r2, r0, r1
		0xeafffffe, // B .
	)

	tb.step(3)
	test.ExpectEquality(t, tb.reg(2), uint32(3))
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+12))
	test.ExpectEquality(t, tb.cpu.Registers().CPSR()&registers.FlagsNZCV, uint32(0))

	// branch to self
	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+12))
	test.ExpectEquality(t, tb.cpu.Instructions(), uint64(4))
}

func TestArithmetic(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)
	regs := tb.cpu.Registers()

	tb.program(
		0xe3a00001, // MOV r0, #1
		0xe3a01002, // MOV r1, #2
		0xe0503001, // SUBS r3, r0, r1
		0xe1510000, // CMP r1, r0
		0xe0a04001, // ADC r4, r0, r1
		0xe0c15000, // SBC r5, r1, r0
		0xe260600a, // RSB r6, r0, #10
		0xe3e07000, // MVN r7, #0
		0xe3c780ff, // BIC r8, r7, #0xff
		0xe0279008, // EOR r9, r7, r8
		0xe1a0a200, // MOV r10, r0, LSL #4
		0xe1b0b0a0, // MOVS r11, r0, LSR #1
		0xe1a0c0e1, // MOV r12, r1, ROR #1
	)

	tb.step(3)
	test.ExpectEquality(t, tb.reg(3), uint32(0xffffffff))
	test.ExpectSuccess(t, regs.N())
	test.ExpectFailure(t, regs.Z())
	test.ExpectFailure(t, regs.C())
	test.ExpectFailure(t, regs.V())

	tb.step(1)
	test.ExpectSuccess(t, regs.C())
	test.ExpectFailure(t, regs.N())

	tb.step(2)
	test.ExpectEquality(t, tb.reg(4), uint32(4))
	test.ExpectEquality(t, tb.reg(5), uint32(1))

	tb.step(4)
	test.ExpectEquality(t, tb.reg(6), uint32(9))
	test.ExpectEquality(t, tb.reg(7), uint32(0xffffffff))
	test.ExpectEquality(t, tb.reg(8), uint32(0xffffff00))
	test.ExpectEquality(t, tb.reg(9), uint32(0x000000ff))

	tb.step(3)
	test.ExpectEquality(t, tb.reg(10), uint32(16))
	test.ExpectEquality(t, tb.reg(11), uint32(0))
	test.ExpectSuccess(t, regs.Z())
	test.ExpectSuccess(t, regs.C())
	test.ExpectEquality(t, tb.reg(12), uint32(1))
}

func TestOverflow(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)
	regs := tb.cpu.Registers()

	tb.program(
		0xe3a00102, // MOV r0, #0x80000000
		0xe0902000, // ADDS r2, r0, r0
		0xe3a02003, // MOV r2, #3
		0xe3a01002, // MOV r1, #2
		0xe1a03211, // MOV r3, r1, LSL r2
	)

	tb.step(2)
	test.ExpectEquality(t, tb.reg(2), uint32(0))
	test.ExpectSuccess(t, regs.Z())
	test.ExpectSuccess(t, regs.C())
	test.ExpectSuccess(t, regs.V())
	test.ExpectFailure(t, regs.N())

	tb.step(3)
	test.ExpectEquality(t, tb.reg(3), uint32(16))
}

func TestConditions(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.program(
		0xe3a00001, // MOV r0, #1
		0xe3500000, // CMP r0, #0
		0x03a00005, // MOVEQ r0, #5
		0x13a01006, // MOVNE r1, #6
	)

	tb.step(4)
	test.ExpectEquality(t, tb.reg(0), uint32(1))
	test.ExpectEquality(t, tb.reg(1), uint32(6))
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+16))
}

func TestBranch(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.program(
		0xeb000002, // BL codeStart+0x10
		0xeafffffd, // B codeStart
		0x00000000,
		0x00000000,
		0xe1a0f00e, // MOV pc, lr
	)

	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+0x10))
	test.ExpectEquality(t, tb.reg(registers.LR), uint32(codeStart+4))

	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+4))

	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart))
}

func TestBranchExchange(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.program(
		0xe12fff30, // BLX r0
		0x00000000,
		0x00000000,
		0x00000000,
		0xe12fff11, // BX r1
	)

	tb.setReg(0, codeStart+0x10)
	tb.setReg(1, codeStart+0x21)

	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+0x10))
	test.ExpectEquality(t, tb.reg(registers.LR), uint32(codeStart+4))

	// change to thumb state
	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+0x20))
	test.ExpectSuccess(t, tb.cpu.Registers().T())
}

func TestLoadStore(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.write32(0x80001000, 0x11223344)
	tb.write32(0x80001004, 0x8866f788)
	tb.setReg(1, 0x80001000)

	tb.program(
		0xe5910000, // LDR r0, [r1]
		0xe5d12000, // LDRB r2, [r1]
		0xe5913001, // LDR r3, [r1, #1]
		0xe1d140b0, // LDRH r4, [r1]
		0xe1d150d4, // LDRSB r5, [r1, #4]
		0xe1d160f6, // LDRSH r6, [r1, #6]
		0xe5a10008, // STR r0, [r1, #8]!
		0xe4117008, // LDR r7, [r1], #-8
		0xe1c141b0, // STRH r4, [r1, #0x10]
		0xe5c12012, // STRB r2, [r1, #0x12]
		0xe1c180d0, // LDRD r8, [r1]
		0xe1c182f0, // STRD r8, [r1, #0x20]
		0xe101a094, // SWP r10, r4, [r1]
	)

	tb.step(6)
	test.ExpectEquality(t, tb.reg(0), uint32(0x11223344))
	test.ExpectEquality(t, tb.reg(2), uint32(0x44))
	test.ExpectEquality(t, tb.reg(3), uint32(0x44112233))
	test.ExpectEquality(t, tb.reg(4), uint32(0x3344))
	test.ExpectEquality(t, tb.reg(5), uint32(0xffffff88))
	test.ExpectEquality(t, tb.reg(6), uint32(0xffff8866))

	tb.step(1)
	test.ExpectEquality(t, tb.read32(0x80001008), uint32(0x11223344))
	test.ExpectEquality(t, tb.reg(1), uint32(0x80001008))

	tb.step(1)
	test.ExpectEquality(t, tb.reg(7), uint32(0x11223344))
	test.ExpectEquality(t, tb.reg(1), uint32(0x80001000))

	tb.step(2)
	test.ExpectEquality(t, tb.read32(0x80001010), uint32(0x00443344))

	tb.step(2)
	test.ExpectEquality(t, tb.reg(8), uint32(0x11223344))
	test.ExpectEquality(t, tb.reg(9), uint32(0x8866f788))
	test.ExpectEquality(t, tb.read32(0x80001020), uint32(0x11223344))
	test.ExpectEquality(t, tb.read32(0x80001024), uint32(0x8866f788))

	tb.step(1)
	test.ExpectEquality(t, tb.reg(10), uint32(0x11223344))
	test.ExpectEquality(t, tb.read32(0x80001000), uint32(0x3344))
}

func TestBlockTransfer(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.setReg(registers.SP, 0x80002000)
	tb.setReg(0, 1)
	tb.setReg(1, 2)
	tb.setReg(registers.LR, 0xdead)
	tb.setReg(2, 0x80003000)

	tb.program(
		0xe92d4003, // STMDB sp!, {r0, r1, lr}
		0xe3a00000, // MOV r0, #0
		0xe3a01000, // MOV r1, #0
		0xe8bd0003, // LDMIA sp!, {r0, r1}
		0xe8820003, // STMIA r2, {r0, r1}
	)

	tb.step(1)
	test.ExpectEquality(t, tb.reg(registers.SP), uint32(0x80001ff4))
	test.ExpectEquality(t, tb.read32(0x80001ff4), uint32(1))
	test.ExpectEquality(t, tb.read32(0x80001ff8), uint32(2))
	test.ExpectEquality(t, tb.read32(0x80001ffc), uint32(0xdead))

	tb.step(3)
	test.ExpectEquality(t, tb.reg(0), uint32(1))
	test.ExpectEquality(t, tb.reg(1), uint32(2))
	test.ExpectEquality(t, tb.reg(registers.SP), uint32(0x80001ffc))

	tb.step(1)
	test.ExpectEquality(t, tb.read32(0x80003000), uint32(1))
	test.ExpectEquality(t, tb.read32(0x80003004), uint32(2))
	test.ExpectEquality(t, tb.reg(2), uint32(0x80003000))
}

func TestBlockTransferPC(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.setReg(registers.SP, 0x80002000)
	tb.write32(0x80002000, 7)
	tb.write32(0x80002004, codeStart+0x10)

	tb.program(
		0xe8bd8001, // LDMIA sp!, {r0, pc}
	)

	tb.step(1)
	test.ExpectEquality(t, tb.reg(0), uint32(7))
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+0x10))
	test.ExpectEquality(t, tb.reg(registers.SP), uint32(0x80002008))
}

func TestMultiply(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)

	tb.setReg(0, 0xffffffff)
	tb.setReg(1, 2)

	tb.program(
		0xe0020190, // MUL r2, r0, r1
		0xe0231190, // MLA r3, r0, r1, r1
		0xe0854190, // UMULL r4, r5, r0, r1
		0xe0c76190, // SMULL r6, r7, r0, r1
		0xe1680180, // SMULBB r8, r0, r1
		0xe1091180, // SMLABB r9, r0, r1, r1
	)

	tb.step(6)
	test.ExpectEquality(t, tb.reg(2), uint32(0xfffffffe))
	test.ExpectEquality(t, tb.reg(3), uint32(0))
	test.ExpectEquality(t, tb.reg(4), uint32(0xfffffffe))
	test.ExpectEquality(t, tb.reg(5), uint32(1))
	test.ExpectEquality(t, tb.reg(6), uint32(0xfffffffe))
	test.ExpectEquality(t, tb.reg(7), uint32(0xffffffff))
	test.ExpectEquality(t, tb.reg(8), uint32(0xfffffffe))
	test.ExpectEquality(t, tb.reg(9), uint32(0))
}

func TestMiscellaneous(t *testing.T) {
	tb := prepareTestBoard(t, 0x10000, nil)
	regs := tb.cpu.Registers()

	tb.setReg(0, 0x7fffffff)
	tb.setReg(1, 1)
	tb.setReg(4, 0x00010000)

	tb.program(
		0xe16f5f14, // CLZ r5, r4
		0xe1012050, // QADD r2, r0, r1
		0xe10f3000, // MRS r3, CPSR
		0xe328f4f0, // MSR CPSR_f, #0xf0000000
		0xe321f01f, // MSR CPSR_c, #0x1f
		0xf5d1f000, // PLD [r1]
	)

	tb.step(1)
	test.ExpectEquality(t, tb.reg(5), uint32(15))

	tb.step(1)
	test.ExpectEquality(t, tb.reg(2), uint32(0x7fffffff))
	test.ExpectSuccess(t, regs.Q())

	tb.step(1)
	test.ExpectEquality(t, tb.reg(3)&registers.FlagQ, registers.FlagQ)

	tb.step(1)
	test.ExpectEquality(t, regs.CPSR()&registers.FlagsNZCV, registers.FlagsNZCV)

	tb.step(1)
	test.ExpectEquality(t, regs.Mode(), registers.ModeSYS)

	tb.step(1)
	test.ExpectEquality(t, tb.pc(), uint32(codeStart+24))
}
