package thumbasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBxEncoding(t *testing.T) {
	a := New[string]()
	a.Bx(LR)

	out, err := a.Link(0)
	require.NoError(t, err)
	// bx lr: format5 op=BX(11), H2=1 (lr high bit set), rs low bits=6
	// 0100 0111 0111 0000 -> 0x4770
	assert.Equal(t, []byte{0x70, 0x47}, out)
}

func TestSwiEncoding(t *testing.T) {
	a := New[string]()
	require.NoError(t, a.Swi(0x12))

	out, err := a.Link(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0xDF}, out)
}

func TestSwiRejectsOutOfRange(t *testing.T) {
	a := New[string]()
	err := a.Swi(256)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, OutOfRange, target.Kind)
}

func TestArmToThumbEncoding(t *testing.T) {
	a := New[string]()
	a.ArmToThumb(R12)

	out, err := a.Link(0)
	require.NoError(t, err)
	// add r12, pc, #1: 1110 0010 1000 1111 1100 0000 0000 0001 -> 0xE28FC001
	// bx r12:          1110 0001 0010 1111 1111 1111 0001 1100 -> 0xE12FFF1C
	assert.Equal(t, []byte{0x01, 0xC0, 0x8F, 0xE2}, out[0:4])
	assert.Equal(t, []byte{0x1C, 0xFF, 0x2F, 0xE1}, out[4:8])
}
