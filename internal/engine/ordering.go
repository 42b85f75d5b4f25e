package engine

import (
	"sort"

	"forge/board"
)

const (
	scoreHashMove       = 90_000
	scoreQueenPromotion = 80_000
	scoreCaptureBase    = 70_000
	scoreKillerBase     = 60_000
	scoreCountermove    = 50_000
	scoreRecapture      = 40_000
	scoreGivesCheck     = 30_000

	kingMovePenalty = 100 // "pawn-value-sized" per spec.md section 4.2
)

// ScoreMove implements spec.md section 4.2's score_move: a strictly-layered
// priority so no category ties with a lower one. Grounded on the teacher's
// moveScore/sortMoves (blunext-chess/engine/search.go), widened from a
// bare MVV-LVA comparator to the full eight-layer scheme spec.md names.
func ScoreMove(pos *board.Position, m board.Move, ply int, phase int, hashMove board.Move, h *Heuristics, prevMove board.Move) int {
	if !hashMove.IsNull() && m == hashMove {
		return scoreHashMove
	}
	if m.Promotion == board.Queen {
		return scoreQueenPromotion
	}
	if m.IsCapture() {
		victimValue := lerp(mgPieceValue[m.Captured], egPieceValue[m.Captured], phase)
		attackerValue := lerp(mgPieceValue[m.Piece], egPieceValue[m.Piece], phase)
		return scoreCaptureBase + (victimValue - attackerValue)
	}
	if idx, ok := h.IsKiller(ply, m); ok {
		return scoreKillerBase - idx
	}
	if cm, ok := h.Countermove(prevMove); ok && cm == m {
		return scoreCountermove
	}
	if !prevMove.IsNull() && m.To == prevMove.To {
		return scoreRecapture
	}
	if pos.GivesCheck(m) {
		return scoreGivesCheck
	}

	fromSq, toSq := m.From, m.To
	if pos.SideToMove() == board.Black {
		fromSq, toSq = mirror(fromSq), mirror(toSq)
	}
	positional := lerp(mgPSQT[m.Piece][toSq], egPSQT[m.Piece][toSq], phase) -
		lerp(mgPSQT[m.Piece][fromSq], egPSQT[m.Piece][fromSq], phase)
	if m.Piece == board.King {
		positional -= kingMovePenalty
	}

	return h.History(pos.SideToMove(), m.From, m.To) + positional
}

// SortedMoves returns pos's legal moves ordered by ScoreMove descending,
// implementing spec.md section 4.2's sorted_moves. Sort stability is not
// required, matching the spec.
func SortedMoves(pos *board.Position, ply int, hashMove board.Move, h *Heuristics, prevMove board.Move) []board.Move {
	moves := pos.LegalMoves()
	phase := gamePhase(pos)
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = ScoreMove(pos, m, ply, phase, hashMove, h, prevMove)
	}
	sort.Sort(&scoredMoves{moves: moves, scores: scores})
	return moves
}

// scoredMoves sorts moves and their parallel scores together, descending by
// score; a plain sort.Slice over `moves` alone would leave `scores`
// out of sync with the reordered moves after each swap.
type scoredMoves struct {
	moves  []board.Move
	scores []int
}

func (s *scoredMoves) Len() int { return len(s.moves) }
func (s *scoredMoves) Less(i, j int) bool {
	return s.scores[i] > s.scores[j]
}
func (s *scoredMoves) Swap(i, j int) {
	s.moves[i], s.moves[j] = s.moves[j], s.moves[i]
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}

// IsQuiet classifies a move as quiet for pruning/reduction purposes, per
// spec.md section 4.4.1 step 9: not a capture, not a promotion, not played
// while in check, not giving check (except past the quiescence-check-depth
// limit, which callers enforce by not calling IsQuiet there), and not a
// significant pawn push (to rank >= 6 from below, or rank <= 1 from above).
func IsQuiet(pos *board.Position, m board.Move, inCheck bool) bool {
	if m.IsCapture() || m.IsPromotion() || inCheck {
		return false
	}
	if pos.GivesCheck(m) {
		return false
	}
	if isSignificantPawnPush(m) {
		return false
	}
	return true
}

func isSignificantPawnPush(m board.Move) bool {
	if m.Piece != board.Pawn {
		return false
	}
	toRank := m.To >> 3
	fromRank := m.From >> 3
	if toRank >= 6 && toRank > fromRank {
		return true
	}
	if toRank <= 1 && toRank < fromRank {
		return true
	}
	return false
}
