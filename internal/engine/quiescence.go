package engine

import (
	"sort"

	"forge/board"
)

// Quiescence implements spec.md section 4.4.2's quiescence(pos, current_depth,
// max_depth, alpha, beta): stand-pat, then loud moves only, recursing until
// the position is quiet or QuiescenceCheckDepth plies past the horizon have
// elapsed. Grounded on blunext-chess/engine/search.go's quiescence (capture-
// only move generation, delta-free stand-pat cutoff).
//
// prevMove is the move that led to pos, threaded through for move ordering's
// countermove/recapture layers, matching AlphaBeta's prevMove parameter.
func (ctx *SearchContext) Quiescence(pos *board.Position, currentDepth, maxDepth, alpha, beta int, prevMove board.Move) int {
	if ctx.Clock.Halted() {
		return aborted
	}
	ctx.Nodes++
	if currentDepth > ctx.SelDepth {
		ctx.SelDepth = currentDepth
	}

	us := pos.SideToMove()
	inCheck := pos.IsInCheck(us)

	standPat := Evaluate(pos)
	if !inCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	withinCheckWindow := currentDepth-maxDepth < QuiescenceCheckDepth
	if !withinCheckWindow {
		return alpha
	}

	moves := loudMoves(pos, inCheck)
	if len(moves) == 0 {
		if inCheck && len(pos.LegalMoves()) == 0 {
			return -CHECKMATE + currentDepth
		}
		return alpha
	}

	phase := gamePhase(pos)
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = ScoreMove(pos, m, currentDepth, phase, board.Move{}, ctx.Heuristics, prevMove)
	}
	sort.Sort(&scoredMoves{moves: moves, scores: scores})

	for _, m := range moves {
		undo := pos.MakeMove(m)
		score := -ctx.Quiescence(pos, currentDepth+1, maxDepth, -beta, -alpha, m)
		pos.UnmakeMove(m, undo)

		if IsAborted(score) {
			return aborted
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// loudMoves returns captures, promotions, checking moves, and significant
// pawn pushes, plus every legal move when already in check (spec.md section
// 4.4.2 step 3: "if in check, all legal moves are loud"; otherwise loud
// moves are captures/promotions, checks, and significant pawn pushes, the
// latter two only while still inside the quiescence-check-depth window —
// callers only reach this once that window check has already passed).
func loudMoves(pos *board.Position, inCheck bool) []board.Move {
	all := pos.LegalMoves()
	if inCheck {
		return all
	}
	loud := all[:0:0]
	for _, m := range all {
		if m.IsCapture() || m.IsPromotion() || pos.GivesCheck(m) || isSignificantPawnPush(m) {
			loud = append(loud, m)
		}
	}
	return loud
}
