package thumbasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAluRegisterForms(t *testing.T) {
	a := New[string]()
	a.And(R0, R1)
	a.Orr(R0, R1)
	a.Mul(R0, R1)

	out, err := a.Link(0)
	require.NoError(t, err)
	require.Len(t, out, 6)
	// and r0, r1: 010000 0000 001 000 -> 0x4008
	assert.Equal(t, []byte{0x08, 0x40}, out[0:2])
	// orr r0, r1: op 1100 -> 0x4308
	assert.Equal(t, []byte{0x08, 0x43}, out[2:4])
	// mul r0, r1: op 1101 -> 0x4348
	assert.Equal(t, []byte{0x48, 0x43}, out[4:6])
}

func TestHiRegisterMov(t *testing.T) {
	a := New[string]()
	a.MovHiReg(R8, LR)

	out, err := a.Link(0)
	require.NoError(t, err)
	// mov r8, lr: format5 op=MOV(10), H1(rd high)=1, H2(rs high)=1, rs low bits=6, rd low bits=0
	// -> 0x46F0
	assert.Equal(t, []byte{0xF0, 0x46}, out)
}

func TestAddSPNegativeEmitsSub(t *testing.T) {
	a := New[string]()
	a.AddSP(Val[string](-16))

	out, err := a.Link(0)
	require.NoError(t, err)
	// sub sp, #16: 1011 0000 1 0000100 -> 0xB084
	assert.Equal(t, []byte{0x84, 0xB0}, out)
}

func TestAddSPRejectsMisalignedOffset(t *testing.T) {
	a := New[string]()
	a.AddSP(Val[string](3))

	_, err := a.Link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, Misaligned, target.Kind)
}

func TestAddHiRegRewritesWhenBothLow(t *testing.T) {
	a := New[string]()
	a.AddHiReg(R0.Reg, R1.Reg)

	out, err := a.Link(0)
	require.NoError(t, err)
	// both low -> rewritten as add r0, r0, r1 (format2 reg): 0x1840.
	assert.Equal(t, []byte{0x40, 0x18}, out)
}

func TestAddHiRegKeepsHiEncodingWhenNotBothLow(t *testing.T) {
	a := New[string]()
	a.AddHiReg(R8, LR)

	out, err := a.Link(0)
	require.NoError(t, err)
	// add r8, lr: format5 op=ADD(00), H1=1, H2=1, rs low bits=6, rd low bits=0 -> 0x44F0
	assert.Equal(t, []byte{0xF0, 0x44}, out)
}

func TestCmpHiRegRewritesWhenBothLow(t *testing.T) {
	a := New[string]()
	a.CmpHiReg(R0.Reg, R1.Reg)

	out, err := a.Link(0)
	require.NoError(t, err)
	// both low -> rewritten as cmp r0, r1 (format4 alu cmp): 0x4288.
	assert.Equal(t, []byte{0x88, 0x42}, out)
}

func TestMovHiRegRewritesWhenBothLow(t *testing.T) {
	a := New[string]()
	a.MovHiReg(R0.Reg, R1.Reg)

	out, err := a.Link(0)
	require.NoError(t, err)
	// both low -> rewritten as add r0, r1, #0 (format2 imm3): 0x1C08.
	assert.Equal(t, []byte{0x08, 0x1C}, out)
}

func TestMovImm8ResolvesSymbol(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Label("value"))
	a.MovImm8(R0, SymRef[string]("value"))

	out, err := a.Link(5)
	require.NoError(t, err)
	// "value" sits at offset 0, so with origin 5 it resolves to 5.
	// mov r0, #5: 0010 0 000 00000101 -> 0x2005
	assert.Equal(t, []byte{0x05, 0x20}, out)
}
