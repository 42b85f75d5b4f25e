package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClearIsBitSet(t *testing.T) {
	var b Bitboard
	assert.False(t, b.IsBitSet(27))
	b.SetBit(27)
	assert.True(t, b.IsBitSet(27))
	b.ClearBit(27)
	assert.False(t, b.IsBitSet(27))
}

func TestBitboardPopCountLSBPopLSB(t *testing.T) {
	var b Bitboard
	b.SetBit(3)
	b.SetBit(10)
	b.SetBit(63)
	assert.Equal(t, 3, b.PopCount())
	assert.Equal(t, 3, b.LSB())

	first := b.PopLSB()
	assert.Equal(t, 3, first)
	assert.Equal(t, 2, b.PopCount())
}

func TestBitboardToSlice(t *testing.T) {
	var b Bitboard
	b.SetBit(0)
	b.SetBit(5)
	b.SetBit(63)
	assert.ElementsMatch(t, []int{0, 5, 63}, b.ToSlice())
}

func TestAlgebraicRoundTrip(t *testing.T) {
	for _, sq := range []int{0, 7, 8, 27, 63} {
		alg := IndexToAlgebraic(sq)
		idx, ok := AlgebraicToIndex(alg)
		assert.True(t, ok)
		assert.Equal(t, sq, idx)
	}
}

func TestAlgebraicToIndexRejectsGarbage(t *testing.T) {
	_, ok := AlgebraicToIndex("z9")
	assert.False(t, ok)
	_, ok = AlgebraicToIndex("e")
	assert.False(t, ok)
}
