package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHashMatchesIncrementalMakeUnmake(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)

	for _, m := range pos.LegalMoves() {
		undo := pos.MakeMove(m)
		assert.Equal(t, pos.ComputeHash(), pos.Hash, "incremental hash diverged after %s", m)
		pos.UnmakeMove(m, undo)
		assert.Equal(t, pos.ComputeHash(), pos.Hash, "incremental hash diverged after unmaking %s", m)
	}
}

func TestComputeHashDiffersBySideToMove(t *testing.T) {
	white, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	assert.NotEqual(t, white.Hash, black.Hash)
}

func TestComputeHashDiffersByEnPassant(t *testing.T) {
	a, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	b, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, b.Hash)
}
