package thumbasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectAlignPadsWithZeros(t *testing.T) {
	o := newObject[string]()
	o.emit8(0xAB)
	require.NoError(t, o.align(2))
	assert.Equal(t, Address(4), o.currentLC())
	assert.Equal(t, []byte{0xAB, 0, 0, 0}, o.buf)
}

func TestObjectAlignRejectsOutOfRangeShift(t *testing.T) {
	o := newObject[string]()
	err := o.align(32)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, AlignmentOutOfRange, target.Kind)
}

func TestObjectAddSymbolRejectsDuplicate(t *testing.T) {
	o := newObject[string]()
	require.NoError(t, o.addSymbol("start"))
	err := o.addSymbol("start")
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, SymbolAlreadyDefined, target.Kind)
}

func TestObjectPeekPokeRoundTrip(t *testing.T) {
	o := newObject[string]()
	o.emit32(0)
	o.poke32(0, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), o.peekOpcode32(0))

	o.poke16(0, 0x1234)
	assert.Equal(t, uint16(0x1234), o.peek16(0))
}

func TestObjectAddReferenceToLiteralDeduplicates(t *testing.T) {
	o := newObject[string]()
	o.emit16(0)
	o.addReferenceToLiteral(0, Val[string](100))
	o.emit16(0)
	o.addReferenceToLiteral(2, Val[string](100))
	o.emit16(0)
	o.addReferenceToLiteral(4, Val[string](200))

	require.Len(t, o.literals, 2)
	require.Len(t, o.literalRefs, 3)
	assert.Equal(t, o.literalRefs[0].literalIdx, o.literalRefs[1].literalIdx)
	assert.NotEqual(t, o.literalRefs[0].literalIdx, o.literalRefs[2].literalIdx)
}

func TestObjectLinkRejectsUndefinedSymbol(t *testing.T) {
	o := newObject[string]()
	o.emit16(0)
	o.addReference(KindUnconditionalBranch, 0, SymRef[string]("missing"))

	_, err := o.link(0)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, UndefinedSymbol, target.Kind)
}

func TestObjectLinkRejectsOriginOverflow(t *testing.T) {
	o := newObject[string]()
	o.emit32(0)

	_, err := o.link(MaxAddress)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Equal(t, OriginTooLarge, target.Kind)
}
