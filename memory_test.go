package thumbasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLdrRegisterOffsetEncoding(t *testing.T) {
	a := New[string]()
	a.LdrReg(R0, R1, R2)

	out, err := a.Link(0)
	require.NoError(t, err)
	// ldr r0, [r1, r2]: 0101 1 0 0 010 001 000 -> 0x5888
	assert.Equal(t, []byte{0x88, 0x58}, out)
}

func TestStrImmediateOffsetResolves(t *testing.T) {
	a := New[string]()
	a.StrImm(R0, R1, Val[string](8))

	out, err := a.Link(0)
	require.NoError(t, err)
	// str r0, [r1, #8]: offset5 field = 8/4 = 2 -> 0110 0 000 10 001 000 -> 0x6088
	assert.Equal(t, []byte{0x88, 0x60}, out)
}

func TestStrImmediateRejectsMisalignedOffset(t *testing.T) {
	a := New[string]()
	a.StrImm(R0, R1, Val[string](3))

	_, err := a.Link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, Misaligned, target.Kind)
}

func TestLdmiaEncoding(t *testing.T) {
	a := New[string]()
	a.Ldmia(R0, NewLowRegList(R1, R2))

	out, err := a.Link(0)
	require.NoError(t, err)
	// ldmia r0!, {r1,r2}: 1100 1 000 00000110 -> 0xC806
	assert.Equal(t, []byte{0x06, 0xC8}, out)
}
