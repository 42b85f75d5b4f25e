package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/board"
)

func newTestContext() *SearchContext {
	return NewSearchContext(nil)
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos := mustFEN(t, "4k3/8/4K3/8/8/8/8/7R w - - 0 1")
	ctx := newTestContext()

	result := ctx.Search(pos, SearchLimits{MaxDepth: 4})

	require.False(t, result.BestMove.IsNull())
	assert.True(t, isMateScore(result.Score))
	assert.Greater(t, result.Score, 0)

	undo := pos.MakeMove(result.BestMove)
	defer pos.UnmakeMove(result.BestMove, undo)
	assert.True(t, pos.IsCheckmate())
}

func TestSearchAvoidsStalemate(t *testing.T) {
	pos := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	ctx := newTestContext()

	result := ctx.Search(pos, SearchLimits{MaxDepth: 3})
	require.False(t, result.BestMove.IsNull())

	undo := pos.MakeMove(result.BestMove)
	stalemate := pos.IsStalemate()
	pos.UnmakeMove(result.BestMove, undo)

	assert.False(t, stalemate)
}

func TestSearchPrefersMaterialCapture(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	ctx := newTestContext()

	result := ctx.Search(pos, SearchLimits{MaxDepth: 3})
	require.False(t, result.BestMove.IsNull())
	assert.True(t, result.BestMove.IsCapture())
}

func TestKnightShuffleIsClaimableRepetitionDraw(t *testing.T) {
	pos := board.StartPosition()
	// Shuffle knights back and forth to the same position three times.
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, uci := range shuffle {
		m, ok := findTestMove(pos, uci)
		require.True(t, ok, "move %s should be legal", uci)
		pos.MakeMove(m)
	}
	assert.True(t, pos.IsClaimableDraw())
}

func findTestMove(pos *board.Position, uciMove string) (board.Move, bool) {
	for _, m := range pos.LegalMoves() {
		if m.ToUCI() == uciMove {
			return m, true
		}
	}
	return board.Move{}, false
}

func TestSearchRespectsImmediateCancellation(t *testing.T) {
	pos := board.StartPosition()
	ctx := newTestContext()
	ctx.Clock.Stop()

	start := time.Now()
	result := ctx.Search(pos, SearchLimits{MaxDepth: 20})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond)
	assert.False(t, result.BestMove.IsNull(), "an aborted search with no completed depth should still fall back to a legal move")
}

func TestSearchStopMidFlightHalts(t *testing.T) {
	pos := board.StartPosition()
	ctx := newTestContext()
	ctx.Clock.SetDeadline(5 * time.Millisecond)

	result := ctx.Search(pos, SearchLimits{MaxDepth: 64})
	assert.False(t, result.BestMove.IsNull(), "a shallow iteration should complete before the deadline")
}

func TestQuiescenceStandPatAboveBeta(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1") // white up a queen
	ctx := newTestContext()
	score := ctx.Quiescence(pos, 0, 0, -CHECKMATE, -500, board.NullMove)
	assert.Equal(t, -500, score)
}

func TestSearchPastAspirationDepthReturnsMove(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	ctx := newTestContext()
	result := ctx.Search(pos, SearchLimits{MaxDepth: AspirationWindowDepth + 2})
	require.False(t, result.BestMove.IsNull())
}

func TestSearchRecordsCountermove(t *testing.T) {
	// A multi-ply search of a simple pawn position must record at least one
	// countermove (a quiet beta-cutoff move below a non-null previous move).
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	ctx := newTestContext()

	ctx.Search(pos, SearchLimits{MaxDepth: 4})

	found := false
	for from := 0; from < 64 && !found; from++ {
		for to := 0; to < 64; to++ {
			if m, ok := ctx.Heuristics.Countermove(board.Move{From: from, To: to, Piece: board.Pawn}); ok && !m.IsNull() {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "a multi-ply search should have recorded at least one countermove")
}

func TestFallbackMoveReturnsTopOrderedLegalMove(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	m := fallbackMove(pos)
	require.False(t, m.IsNull())

	legal := false
	for _, lm := range pos.LegalMoves() {
		if lm == m {
			legal = true
			break
		}
	}
	assert.True(t, legal)
}

func TestFallbackMoveNoLegalMovesReturnsNull(t *testing.T) {
	// Back-rank checkmate: white's own pawns trap the king, no legal moves.
	pos := mustFEN(t, "6k1/8/8/8/8/8/5PPP/r6K w - - 0 1")
	require.True(t, pos.IsCheckmate())
	assert.True(t, fallbackMove(pos).IsNull())
}
