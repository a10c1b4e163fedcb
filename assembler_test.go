package thumbasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalBranchToSelf(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("loop"))
	a.Beq(SymRef[string]("loop"))

	out, err := a.Link(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFE, 0xD0}, out)
}

func TestArmBranchToSelf(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("here"))
	a.ArmBranch(SymRef[string]("here"))

	out, err := a.Link(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xEA}, out)
}

func TestBranchLinkToFollowingInstruction(t *testing.T) {
	a := New[string]()
	a.Bl(SymRef[string]("after"))
	require.NoError(t, a.Label("after"))

	out, err := a.Link(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xF0, 0x00, 0xF8}, out)
}

func TestUnconditionalBranchToSelf(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("loop"))
	a.B(SymRef[string]("loop"))

	out, err := a.Link(0)
	require.NoError(t, err)
	// -2 halfwords == -4 bytes from (pc+4), encoded as the classic "e7fe".
	assert.Equal(t, []byte{0xFE, 0xE7}, out)
}

func TestAsrZeroShiftRewritesToLsl(t *testing.T) {
	a := New[string]()
	a.Asr(R1, R0, Val[string](0))

	out, err := a.Link(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00}, out)
}

func TestAsrThirtyTwoEncodesAsZero(t *testing.T) {
	a := New[string]()
	a.Asr(R1, R0, Val[string](32))

	out, err := a.Link(0)
	require.NoError(t, err)
	// format1 asr, shift field 0 (meaning 32), rs=r0, rd=r1: 0x1001.
	assert.Equal(t, []byte{0x01, 0x10}, out)
}

func TestAsrRejectsOutOfRangeShift(t *testing.T) {
	a := New[string]()
	a.Asr(R1, R0, Val[string](33))

	_, err := a.Link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, OutOfRange, target.Kind)
}

func TestLslSymbolicShiftResolves(t *testing.T) {
	a := New[string]()
	a.Nop()
	a.Nop()
	require.NoError(t, a.Label("four"))
	a.Lsl(R1, R0, SymRef[string]("four"))

	out, err := a.Link(0)
	require.NoError(t, err)
	// lsl r1, r0, #4: format1 lsl, shift=4, rs=r0, rd=r1: 0x0101.
	assert.Equal(t, []byte{0x01, 0x01}, out[4:6])
}

func TestLiteralPoolDeduplicatesEqualValues(t *testing.T) {
	a := New[string]()
	a.Ldr(R0, Val[string](0x12345678))
	a.Ldr(R1, Val[string](0x12345678))

	out, err := a.Link(0)
	require.NoError(t, err)
	require.Len(t, out, 8)
	assert.Equal(t, []byte{0x00, 0x48, 0x00, 0x49}, out[:4])
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, out[4:])
}

func TestLiteralPoolKeepsDistinctValuesSeparate(t *testing.T) {
	a := New[string]()
	a.Ldr(R0, Val[string](1))
	a.Ldr(R1, Val[string](2))

	out, err := a.Link(0)
	require.NoError(t, err)
	require.Len(t, out, 12)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, out[4:8])
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, out[8:])
}

func TestPushPopEncoding(t *testing.T) {
	a := New[string]()
	a.Push(NewPushList(R4.Reg, R5.Reg, LR))
	a.Pop(NewPopList(R4.Reg, R5.Reg, PC))

	out, err := a.Link(0)
	require.NoError(t, err)
	// push {r4,r5,lr}: 1011 0 10 1 00110000 -> 0xB530
	// pop  {r4,r5,pc}: 1011 1 10 1 00110000 -> 0xBD30
	assert.Equal(t, []byte{0x30, 0xB5, 0x30, 0xBD}, out)
}

func TestPushWithoutLRExcludesExtraBit(t *testing.T) {
	a := New[string]()
	a.Push(NewPushList(R4.Reg, R5.Reg))

	out, err := a.Link(0)
	require.NoError(t, err)
	// push {r4,r5}: 1011 0 10 0 00110000 -> 0xB430
	assert.Equal(t, []byte{0x30, 0xB4}, out)
}

func TestStmiaRejectsUnpredictableWriteback(t *testing.T) {
	a := New[string]()
	err := a.Stmia(Writeback(R1), NewLowRegList(R0, R1))
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, Unpredictable, target.Kind)
}

func TestStmiaAllowsWritebackAsLowestRegister(t *testing.T) {
	a := New[string]()
	err := a.Stmia(Writeback(R0), NewLowRegList(R0, R1))
	require.NoError(t, err)
}

func TestUndefinedSymbolFailsAtLink(t *testing.T) {
	a := New[string]()
	a.B(SymRef[string]("nowhere"))

	_, err := a.Link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, UndefinedSymbol, target.Kind)
}

func TestDuplicateLabelFails(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("x"))
	err := a.Label("x")
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, SymbolAlreadyDefined, target.Kind)
}

func TestOutOfRangeBranchFailsAtLink(t *testing.T) {
	a := New[string]()
	a.Beq(Val[string](100000))

	_, err := a.Link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, OutOfRange, target.Kind)
}

func TestAddImmediateSignSelectsOpcode(t *testing.T) {
	a := New[string]()
	a.AddImm8(R0, Val[string](-10))

	out, err := a.Link(0)
	require.NoError(t, err)
	// sub r0, #10 -> format3 op=SUB(11), rd=0, imm8=10: 0x3800|10 = 0x380A.
	assert.Equal(t, []byte{0x0A, 0x38}, out)
}

func TestSubImmediateSignSelectsOpcode(t *testing.T) {
	a := New[string]()
	a.SubImm8(R0, Val[string](-10))

	out, err := a.Link(0)
	require.NoError(t, err)
	// requesting sub of a negative value folds to add -> format3 op=ADD(10), rd=0, imm8=10: 0x3000|10 = 0x300A.
	assert.Equal(t, []byte{0x0A, 0x30}, out)
}

func TestAddImm3SignSelectsOpcode(t *testing.T) {
	a := New[string]()
	a.AddImm3(R1, R2, Val[string](-3))

	out, err := a.Link(0)
	require.NoError(t, err)
	// requesting add of a negative value folds to sub -> format2, sub=1, imm3=3, rs=r2, rd=r1.
	// 0x1C00 | 1<<9 | 3<<6 | 2<<3 | 1 = 0x1ED1
	assert.Equal(t, []byte{0xD1, 0x1E}, out)
}

func TestAddSPSymbolicOffsetResolves(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("skip"))
	a.AddSP(SymRef[string]("skip"))

	out, err := a.Link(0)
	require.NoError(t, err)
	// "skip" resolves to 0, so this is "add sp, #0": 0xB000.
	assert.Equal(t, []byte{0x00, 0xB0}, out)
}

func TestSymbolAsAddSubImm3OperandEndToEnd(t *testing.T) {
	a := New[string]()
	a.Nop()
	a.Nop()
	require.NoError(t, a.Label("L"))
	a.AddImm3(R0, R7, SymRef[string]("L"))
	a.SubImm3(R7, R0, SymRef[string]("L"))

	out, err := a.Link(0)
	require.NoError(t, err)
	// add r0, r7, #4 ; sub r7, r0, #4, where L resolves to the address
	// right after the two leading nops.
	assert.Equal(t, []byte{0x38, 0x1D, 0x07, 0x1F}, out[4:8])
}

func TestAdrResolvesToWordAlignedOffset(t *testing.T) {
	a := New[string]()
	a.Adr(R0, SymRef[string]("data"))
	require.NoError(t, a.Align(2))
	require.NoError(t, a.Label("data"))
	a.Word(0xCAFEBABE)

	out, err := a.Link(0)
	require.NoError(t, err)
	// adr at offset 0, data at offset 4: (4-4)/4 = 0.
	assert.Equal(t, []byte{0x00, 0xA0}, out[:2])
	assert.Equal(t, []byte{0xBE, 0xBA, 0xFE, 0xCA}, out[4:])
}
