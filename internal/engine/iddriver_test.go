package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/board"
)

func TestSearchResultReachesRequestedDepth(t *testing.T) {
	pos := board.StartPosition()
	ctx := newTestContext()
	result := ctx.Search(pos, SearchLimits{MaxDepth: 3})

	require.False(t, result.BestMove.IsNull())
	assert.Equal(t, 3, result.Depth)
}

func TestExtractPVStartsWithBestMove(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	ctx := newTestContext()
	result := ctx.Search(pos, SearchLimits{MaxDepth: 3})

	require.False(t, result.BestMove.IsNull())
	require.NotEmpty(t, result.PV)
	assert.Equal(t, result.BestMove, result.PV[0])
}

func TestExtractPVOnlyContainsLegalMoves(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	ctx := newTestContext()
	result := ctx.Search(pos, SearchLimits{MaxDepth: 4})

	work := pos.Clone()
	for _, m := range result.PV {
		legal := false
		for _, lm := range work.LegalMoves() {
			if lm == m {
				legal = true
				break
			}
		}
		require.True(t, legal, "PV move %s must be legal in its position", m.String())
		work.MakeMove(m)
	}
}

func TestWorkerSubmitAndStop(t *testing.T) {
	w := NewWorker(nil)
	defer w.Close()

	pos := board.StartPosition()
	done := make(chan SearchResult, 1)
	w.Submit(Job{
		Position: pos,
		Limits:   SearchLimits{MaxDepth: 2},
		Done:     func(r SearchResult) { done <- r },
	})

	result := <-done
	assert.False(t, result.BestMove.IsNull())
}

func TestWorkerStopHaltsRunningSearch(t *testing.T) {
	w := NewWorker(nil)
	defer w.Close()

	pos := board.StartPosition()
	done := make(chan SearchResult, 1)
	w.Submit(Job{
		Position: pos,
		Limits:   SearchLimits{Infinite: true, MaxDepth: MaxDepth},
		Done:     func(r SearchResult) { done <- r },
	})

	w.Stop()
	<-done
	assert.False(t, w.IsRunning())
}
