package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"forge/board"
)

func TestStoreKillerNewestFirst(t *testing.T) {
	h := NewHeuristics()
	m1 := board.Move{From: 8, To: 16, Piece: board.Pawn}
	m2 := board.Move{From: 9, To: 17, Piece: board.Pawn}

	h.StoreKiller(3, m1)
	h.StoreKiller(3, m2)

	idx, ok := h.IsKiller(3, m2)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = h.IsKiller(3, m1)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestStoreKillerDedupesAgainstSlotZero(t *testing.T) {
	h := NewHeuristics()
	m := board.Move{From: 8, To: 16, Piece: board.Pawn}
	h.StoreKiller(1, m)
	h.StoreKiller(1, m)

	killers := h.Killers(1)
	assert.Equal(t, m, killers[0])
	assert.True(t, killers[1].IsNull())
}

func TestCountermoveRoundTrip(t *testing.T) {
	h := NewHeuristics()
	prev := board.Move{From: 12, To: 28, Piece: board.Pawn}
	refutation := board.Move{From: 6, To: 21, Piece: board.Knight}

	_, ok := h.Countermove(prev)
	assert.False(t, ok)

	h.StoreCountermove(prev, refutation)
	got, ok := h.Countermove(prev)
	assert.True(t, ok)
	assert.Equal(t, refutation, got)
}

func TestUpdateHistoryShrinksOnOverflow(t *testing.T) {
	h := NewHeuristics()
	h.history[board.White][4][20] = MaxHistoryValue - 1

	h.UpdateHistory(board.White, 4, 20, 10)

	assert.Less(t, h.History(board.White, 4, 20), MaxHistoryValue)
}

func TestResetClearsAllTables(t *testing.T) {
	h := NewHeuristics()
	m := board.Move{From: 8, To: 16, Piece: board.Pawn}
	h.StoreKiller(0, m)
	h.UpdateHistory(board.White, 0, 1, 5)

	h.Reset()

	_, ok := h.IsKiller(0, m)
	assert.False(t, ok)
	assert.Equal(t, 0, h.History(board.White, 0, 1))
}
