package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference perft values for the standard starting position, the standard
// verification fixture for any move generator.
func TestPerftStartingPosition(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, c := range cases {
		assert.Equal(t, c.nodes, pos.Perft(c.depth), "perft(%d)", c.depth)
	}
}

// "Kiwipete" is the standard second perft-verification position, exercising
// castling, en passant, and promotions that the starting position never reaches.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), pos.Perft(1))
	assert.Equal(t, uint64(2039), pos.Perft(2))
}
