package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFENStartingPosition(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)

	assert.True(t, pos.WhiteToMove)
	assert.Equal(t, uint8(CastleWhiteKingSide|CastleWhiteQueenSide|CastleBlackKingSide|CastleBlackQueenSide), pos.CastleRights)
	assert.Equal(t, NoEnPassant, pos.EnPassant)
	assert.Equal(t, 0, pos.HalfmoveClock)
	assert.Equal(t, 1, pos.FullmoveNumber)
	assert.Equal(t, 16, pos.White.PopCount())
	assert.Equal(t, 16, pos.Black.PopCount())
	assert.Equal(t, 8, pos.Pawns.PopCount())
}

func TestParseFENRoundTrip(t *testing.T) {
	cases := []string{
		InitialPositionFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range cases {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, pos.ToFEN())
	}
}

func TestParseFENInvalid(t *testing.T) {
	_, err := ParseFEN("not a fen")
	assert.Error(t, err)

	_, err = ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1")
	assert.Error(t, err)
}

func TestParseFENEnPassantTarget(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2")
	require.NoError(t, err)
	sq, ok := AlgebraicToIndex("c6")
	require.True(t, ok)
	assert.Equal(t, sq, pos.EnPassant)
}

func TestParseFENHashIsDeterministic(t *testing.T) {
	a, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	b, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, a.ComputeHash(), a.Hash)
}
