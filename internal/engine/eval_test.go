package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/board"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestEvaluateStartPositionIsSymmetric(t *testing.T) {
	pos := board.StartPosition()
	score := Evaluate(pos)
	assert.InDelta(t, tempoBonusMG, score, 40, "startpos should be near-balanced plus a small tempo bonus")
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a full queen.
	withQueen := mustFEN(t, "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	withoutQueen := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	assert.Greater(t, Evaluate(withQueen), Evaluate(withoutQueen)+500)
}

func TestEvaluateDrawnPositionIsZero(t *testing.T) {
	// K vs K: insufficient material.
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, 0, Evaluate(pos))
}

func TestEvaluateDoubledPawnsPenalized(t *testing.T) {
	doubled := mustFEN(t, "4k3/8/8/8/8/4P3/4P3/4K3 w - - 0 1")
	spread := mustFEN(t, "4k3/8/8/8/8/3P4/4P3/4K3 w - - 0 1")
	assert.Less(t, Evaluate(doubled), Evaluate(spread))
}

func TestGamePhaseBoundsAndMonotonicity(t *testing.T) {
	start := board.StartPosition()
	endgame := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	assert.GreaterOrEqual(t, gamePhase(start), 0)
	assert.LessOrEqual(t, gamePhase(endgame), 256)
	assert.Greater(t, gamePhase(endgame), gamePhase(start))
}

func TestLerpEndpoints(t *testing.T) {
	assert.Equal(t, 10, lerp(10, 20, 0))
	assert.Equal(t, 20, lerp(10, 20, 256))
}

func TestMirrorIsInvolution(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		assert.Equal(t, sq, mirror(mirror(sq)))
	}
}
