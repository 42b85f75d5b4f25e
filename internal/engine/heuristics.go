package engine

import "forge/board"

const maxKillersPerPly = 2

// Heuristics bundles the killer/countermove/history tables consulted by
// move ordering and updated on beta cutoffs (spec.md section 3's "Heuristic
// Tables"). Allocated once per search and reset at the start of every `go`,
// per spec.md section 3's Lifecycle note and section 9's "allocate once per
// search, reuse, and reset" guidance — grounded on the teacher's Session
// killers/history fields (blunext-chess/engine/session.go).
type Heuristics struct {
	killers     [MaxDepth][maxKillersPerPly]board.Move
	countermove [64][64]board.Move
	history     [2][64][64]int
}

// NewHeuristics allocates a zeroed heuristic table set.
func NewHeuristics() *Heuristics {
	return &Heuristics{}
}

// Reset clears every table in place, reusing the backing arrays.
func (h *Heuristics) Reset() {
	*h = Heuristics{}
}

// Killers returns the (up to two) killer moves recorded at ply.
func (h *Heuristics) Killers(ply int) [maxKillersPerPly]board.Move {
	return h.killers[ply]
}

// IsKiller reports whether m is recorded as a killer at ply, returning its
// index (0 = most recent) for move-ordering layer 4's `idx` term.
func (h *Heuristics) IsKiller(ply int, m board.Move) (int, bool) {
	for i, k := range h.killers[ply] {
		if k == m {
			return i, true
		}
	}
	return 0, false
}

// StoreKiller prepends m to ply's killer list (newest-first). Storing the
// move already in slot 0 leaves the list unchanged, so the two slots never
// hold the same move.
func (h *Heuristics) StoreKiller(ply int, m board.Move) {
	if h.killers[ply][0] == m {
		return
	}
	for i := maxKillersPerPly - 1; i > 0; i-- {
		h.killers[ply][i] = h.killers[ply][i-1]
	}
	h.killers[ply][0] = m
}

// Countermove returns the move previously recorded as refuting prev, if any.
// The table's zero value (Piece==Empty) doubles as "unset", the same
// sentinel board.NullMove uses.
func (h *Heuristics) Countermove(prev board.Move) (board.Move, bool) {
	if prev.IsNull() {
		return board.Move{}, false
	}
	m := h.countermove[prev.From][prev.To]
	return m, !m.IsNull()
}

// StoreCountermove records m as the refutation of prev.
func (h *Heuristics) StoreCountermove(prev, m board.Move) {
	if prev.IsNull() {
		return
	}
	h.countermove[prev.From][prev.To] = m
}

// History returns the history-heuristic score for a quiet move by side.
func (h *Heuristics) History(side board.Color, from, to int) int {
	return h.history[side][from][to]
}

// UpdateHistory implements spec.md section 3's History Table update:
// increment by (max_depth - current_depth)^2 on a beta cutoff by a quiet
// move, shrinking every entry by HistoryShrinkFactor if any entry would
// reach MaxHistoryValue.
func (h *Heuristics) UpdateHistory(side board.Color, from, to, bonus int) {
	h.history[side][from][to] += bonus
	if h.history[side][from][to] >= MaxHistoryValue {
		h.shrinkHistory()
	}
}

func (h *Heuristics) shrinkHistory() {
	for s := 0; s < 2; s++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				h.history[s][f][t] /= HistoryShrinkFactor
			}
		}
	}
}
