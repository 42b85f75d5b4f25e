package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/board"
)

func TestScoreMoveHashMoveOutranksEverything(t *testing.T) {
	pos := board.StartPosition()
	h := NewHeuristics()
	moves := pos.LegalMoves()
	require.NotEmpty(t, moves)

	hashMove := moves[0]
	score := ScoreMove(pos, hashMove, 0, gamePhase(pos), hashMove, h, board.NullMove)
	assert.Equal(t, scoreHashMove, score)

	for _, m := range moves[1:] {
		other := ScoreMove(pos, m, 0, gamePhase(pos), hashMove, h, board.NullMove)
		assert.Less(t, other, score)
	}
}

func TestScoreMoveCaptureOutranksQuiet(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	h := NewHeuristics()
	phase := gamePhase(pos)

	var capture, quiet board.Move
	for _, m := range pos.LegalMoves() {
		if m.IsCapture() {
			capture = m
		} else if m.Piece == board.King {
			quiet = m
		}
	}
	require.False(t, capture.IsNull())
	require.False(t, quiet.IsNull())

	captureScore := ScoreMove(pos, capture, 0, phase, board.Move{}, h, board.NullMove)
	quietScore := ScoreMove(pos, quiet, 0, phase, board.Move{}, h, board.NullMove)
	assert.Greater(t, captureScore, quietScore)
}

func TestSortedMovesDescending(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	h := NewHeuristics()
	moves := SortedMoves(pos, 0, board.Move{}, h, board.NullMove)
	require.NotEmpty(t, moves)

	phase := gamePhase(pos)
	prevScore := 1 << 30
	for _, m := range moves {
		s := ScoreMove(pos, m, 0, phase, board.Move{}, h, board.NullMove)
		assert.LessOrEqual(t, s, prevScore)
		prevScore = s
	}
}

func TestIsQuietRejectsCaptures(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	for _, m := range pos.LegalMoves() {
		if m.IsCapture() {
			assert.False(t, IsQuiet(pos, m, false))
		}
	}
}

func TestIsQuietRejectsSignificantPawnPush(t *testing.T) {
	pos := mustFEN(t, "4k3/8/4P3/8/8/8/8/4K3 w - - 0 1")
	var push board.Move
	for _, m := range pos.LegalMoves() {
		if m.Piece == board.Pawn && m.To>>3 == 6 {
			push = m
		}
	}
	require.False(t, push.IsNull())
	assert.False(t, IsQuiet(pos, push, false))
}

func TestIsQuietAcceptsOrdinaryKingShuffle(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	var shuffle board.Move
	for _, m := range pos.LegalMoves() {
		if m.Piece == board.King {
			shuffle = m
			break
		}
	}
	require.False(t, shuffle.IsNull())
	assert.True(t, IsQuiet(pos, shuffle, false))
}
