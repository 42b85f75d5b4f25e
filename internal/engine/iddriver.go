package engine

import (
	"time"

	"forge/board"
)

// SearchResult is the outcome of one Search call: the best move found, its
// score, and bookkeeping for the final UCI `bestmove`/`info` lines.
type SearchResult struct {
	BestMove board.Move
	Score    int
	Depth    int
	Nodes    int64
	PV       []board.Move
}

// SearchLimits bundles the stopping conditions a `go` command can specify,
// per spec.md section 6.
type SearchLimits struct {
	MaxDepth int           // 0 means "no explicit depth cap" (MaxDepth is used)
	MoveTime time.Duration // 0 means "derive from AllocateTime / unbounded"
	Infinite bool
}

// Search runs iterative deepening with aspiration windows, implementing
// spec.md section 4.5's driver. Grounded on blunext-chess/engine/search.go's
// Search/iterativeDeepening (depth loop, best-move tracking) and
// blunext-chess/engine/session.go (PV extraction from the transposition
// table). Blocks until the clock halts or depth/infinite limits are
// satisfied; callers run it on a dedicated worker goroutine (spec.md
// section 5) so `stop`/new `position` commands remain responsive.
func (ctx *SearchContext) Search(pos *board.Position, limits SearchLimits) SearchResult {
	maxDepth := MaxDepth
	if limits.MaxDepth > 0 && limits.MaxDepth < maxDepth {
		maxDepth = limits.MaxDepth
	}

	var result SearchResult
	score := 0

	for depth := StartingDepth; depth <= maxDepth; depth++ {
		if ctx.Clock.Halted() {
			break
		}
		ctx.SelDepth = depth

		iterScore, iterMove, ok := ctx.searchDepth(pos, depth, score)
		if !ok {
			break
		}
		score = iterScore

		result = SearchResult{
			BestMove: iterMove,
			Score:    score,
			Depth:    depth,
			Nodes:    ctx.Nodes,
			PV:       ctx.extractPV(pos, depth),
		}

		if ctx.Logger != nil {
			ctx.emitInfo(result)
		}

		if isMateScore(score) && !limits.Infinite {
			break
		}
	}

	if result.BestMove.IsNull() {
		result.BestMove = fallbackMove(pos)
	}

	return result
}

// fallbackMove implements spec.md section 4.5 step 4 / section 3's
// cancellation invariant: if the search is stopped before any depth
// completes, return the top-ordered legal move (by the same move-ordering
// scorer the search itself uses) rather than a null move, so `bestmove`
// always names a legal move when the position has one.
func fallbackMove(pos *board.Position) board.Move {
	moves := SortedMoves(pos, 0, board.Move{}, NewHeuristics(), board.NullMove)
	if len(moves) == 0 {
		return board.Move{}
	}
	return moves[0]
}

// searchDepth runs one iterative-deepening iteration with an aspiration
// window around prevScore, widening on fail-high/fail-low per spec.md
// section 4.5b: window = AspirationWindowDefault * 2^(attempt *
// AspirationIncreaseExponent / 4), falling back to a full-width search once
// the window would exceed the mate bound. Returns ok=false if the search
// was aborted mid-iteration (no usable partial result at this depth).
func (ctx *SearchContext) searchDepth(pos *board.Position, depth, prevScore int) (int, board.Move, bool) {
	if depth < AspirationWindowDepth {
		score := ctx.AlphaBeta(pos, 0, depth, -CHECKMATE, CHECKMATE, true, board.NullMove)
		if IsAborted(score) {
			return 0, board.Move{}, false
		}
		return score, ctx.bestRootMove(pos), true
	}

	window := AspirationWindowDefault
	alpha := prevScore - window
	beta := prevScore + window

	for attempt := 0; ; attempt++ {
		if alpha < -CHECKMATE {
			alpha = -CHECKMATE
		}
		if beta > CHECKMATE {
			beta = CHECKMATE
		}

		score := ctx.AlphaBeta(pos, 0, depth, alpha, beta, true, board.NullMove)
		if IsAborted(score) {
			return 0, board.Move{}, false
		}

		if score <= alpha {
			window <<= AspirationIncreaseExponent / 4
			if window <= 0 {
				window = CHECKMATE
			}
			alpha = score - window
			continue
		}
		if score >= beta {
			window <<= AspirationIncreaseExponent / 4
			if window <= 0 {
				window = CHECKMATE
			}
			beta = score + window
			continue
		}

		return score, ctx.bestRootMove(pos), true
	}
}

// bestRootMove reads the move AlphaBeta just stored for pos's current
// position back out of the transposition table.
func (ctx *SearchContext) bestRootMove(pos *board.Position) board.Move {
	entry, ok := ctx.TT.Get(pos.Zobrist())
	if !ok {
		return board.Move{}
	}
	return entry.BestMove
}

// extractPV walks the transposition table from pos following each stored
// best move, up to maxLen plies, guarding against hash-collision or
// repetition cycles re-visiting an already-seen position (spec.md section
// 4.5d). The walk plays moves on a clone so the caller's position is
// untouched.
func (ctx *SearchContext) extractPV(pos *board.Position, maxLen int) []board.Move {
	work := pos.Clone()
	seen := map[uint64]bool{}
	pv := make([]board.Move, 0, maxLen)

	for i := 0; i < maxLen; i++ {
		h := work.Zobrist()
		if seen[h] {
			break
		}
		seen[h] = true

		entry, ok := ctx.TT.Get(h)
		if !ok || entry.BestMove.IsNull() {
			break
		}

		legal := false
		for _, m := range work.LegalMoves() {
			if m == entry.BestMove {
				legal = true
				break
			}
		}
		if !legal {
			break
		}

		pv = append(pv, entry.BestMove)
		work.MakeMove(entry.BestMove)
	}

	return pv
}

// emitInfo translates a completed iteration into the Logger's LogInfo shape,
// converting mate-range scores to a mate-in-N count per spec.md section 4.5e.
func (ctx *SearchContext) emitInfo(r SearchResult) {
	info := LogInfo{
		Depth:     r.Depth,
		SelDepth:  ctx.SelDepth,
		Nodes:     r.Nodes,
		ElapsedMS: ctx.Clock.Elapsed().Milliseconds(),
		HashfullP: ctx.TT.Hashfull(),
	}
	if ms := ctx.Clock.Elapsed().Seconds(); ms > 0 {
		info.NPS = int64(float64(r.Nodes) / ms)
	}
	if isMateScore(r.Score) {
		pliesToMate := CHECKMATE - abs(r.Score)
		movesToMate := (pliesToMate + 1) / 2
		if r.Score < 0 {
			movesToMate = -movesToMate
		}
		info.MateIn = movesToMate
	} else {
		info.ScoreCP = r.Score
	}
	for _, m := range r.PV {
		info.PV = append(info.PV, m.ToUCI())
	}
	ctx.Logger.Log(info)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
