package engine

import (
	"forge/board"
)

// aborted is the sentinel score alpha_beta/quiescence return on cancellation
// (spec.md section 4.4.1 step 1 / section 7's "Search cancellation" design).
// It sits just outside the range of every legal evaluation and mate score
// (|s| <= CHECKMATE), so it cannot be mistaken for a real value.
const aborted = -(CHECKMATE + 1)

// IsAborted reports whether score is the cancellation sentinel, with either
// sign: callers negate a child's return value before testing it.
func IsAborted(score int) bool {
	return score == aborted || score == -aborted
}

// SearchContext is the per-search state bundle spec.md section 9 describes
// replacing the source's global mutable state: TT, heuristic tables, the
// cancellation clock, and node/seldepth counters, all owned by one worker
// goroutine. The position under search is not stored here; it is passed to
// Search/AlphaBeta/Quiescence as an argument. Grounded on the teacher's Session (blunext-chess/engine/session.go),
// narrowed to the single-threaded shape spec.md section 1 mandates (no
// numThreads/smpWorker: Lazy SMP is an explicit Non-goal).
type SearchContext struct {
	TT         *TranspositionTable
	Heuristics *Heuristics
	Clock      *SearchClock
	Logger     *Logger
	Nodes      int64
	SelDepth   int
}

// NewSearchContext allocates a fresh context; callers typically keep one
// per worker and call Reset between searches rather than reallocating.
func NewSearchContext(logger *Logger) *SearchContext {
	return &SearchContext{
		TT:         NewTranspositionTable(),
		Heuristics: NewHeuristics(),
		Clock:      NewSearchClock(),
		Logger:     logger,
	}
}

// Reset clears all per-search state, matching spec.md section 3's Lifecycle
// note: "All heuristic and TT tables are created/cleared at the start of
// every go and live until the next one begins."
func (ctx *SearchContext) Reset() {
	ctx.TT.Clear()
	ctx.Heuristics.Reset()
	ctx.Clock.Reset()
	ctx.Nodes = 0
	ctx.SelDepth = 0
}

// mateDistancePrune implements spec.md section 4.4.1 step 3.
func mateDistancePrune(currentDepth, alpha, beta int) (int, int, bool) {
	if currentDepth == 0 {
		return alpha, beta, false
	}
	if a := -CHECKMATE + currentDepth; a > alpha {
		alpha = a
	}
	if b := CHECKMATE - currentDepth - 1; b < beta {
		beta = b
	}
	return alpha, beta, alpha >= beta
}

// isMateScore reports whether s falls in the reserved mate-score region.
func isMateScore(s int) bool {
	if s < 0 {
		s = -s
	}
	return s >= MateScoreThreshold
}

// AlphaBeta implements spec.md section 4.4.1's alpha_beta(pos, current_depth,
// max_depth, alpha, beta). Grounded step-for-step on blunext-chess/engine/
// session.go's alphaBeta (check/single-reply extensions, null-move pruning,
// TT probe/store) and blunext-chess/engine/search.go (MVV-LVA move loop),
// widened to the full pruning/reduction/PVS pipeline spec.md names.
//
// prevMove is the move that led to pos (board.NullMove at the search root,
// or after a null move was played), threaded down the recursion so move
// ordering's countermove/recapture layers (spec.md section 4.2 layers 5-6)
// and the countermove table update on a beta cutoff (section 4.4.1 step 9)
// have it available at every node, not just the root.
func (ctx *SearchContext) AlphaBeta(pos *board.Position, currentDepth, maxDepth, alpha, beta int, canNullMove bool, prevMove board.Move) int {
	if ctx.Clock.Halted() {
		return aborted
	}
	ctx.Nodes++
	alphaOrig := alpha

	var halted bool
	alpha, beta, halted = mateDistancePrune(currentDepth, alpha, beta)
	if halted {
		return alpha
	}

	hash := pos.Zobrist()
	var hashMove board.Move
	var ttScore int
	haveTTScore := false
	remaining := maxDepth - currentDepth
	pvNode := beta-alpha > 1

	if entry, ok := ctx.TT.Get(hash); ok {
		hashMove = entry.BestMove
		if entry.LeafDistance >= remaining && !pvNode {
			switch {
			case entry.Flag == TTLower && entry.Value >= beta:
				return beta
			case entry.Flag == TTUpper && entry.Value <= alpha:
				return alpha
			case entry.Flag == TTExact:
				return entry.Value
			}
		}
		if entry.Flag == TTExact || entry.Flag == TTLower {
			ttScore, haveTTScore = entry.Value, true
		}
	}

	if currentDepth >= maxDepth {
		return ctx.Quiescence(pos, maxDepth, maxDepth, alpha, beta, prevMove)
	}

	us := pos.SideToMove()
	inCheck := pos.IsInCheck(us)

	// Check extension (SPEC_FULL.md section C): one extra ply when the side
	// to move is in check. There is no single-reply extension. The
	// extension is applied after the TT probe above, which used the
	// caller-supplied maxDepth; the pruning block, the move loop and the TT
	// stores below use the extended remaining.
	if inCheck {
		maxDepth++
		remaining = maxDepth - currentDepth
	}

	futilityPrunable := false

	if !pvNode && !inCheck && !pos.IsGameOver() {
		if canNullMove && currentDepth != 0 && remaining >= 3 {
			static := Evaluate(pos)
			if haveTTScore {
				static = ttScore
			}
			reduction := nullMoveReduction(remaining, static, beta)
			if reduction > 0 {
				undo := pos.MakeNullMove()
				score := -ctx.AlphaBeta(pos, currentDepth+reduction, maxDepth, -beta, -beta+1, false, board.NullMove)
				pos.UnmakeNullMove(undo)
				if IsAborted(score) {
					return aborted
				}
				if !isMateScore(score) && score >= beta {
					return beta
				}
			}
		}

		static := Evaluate(pos)
		if remaining <= FutilityDepth && static+FutilityMargin[remaining] < alpha {
			futilityPrunable = true
		}
		if remaining <= ReverseFutilityDepth && static-ReverseFutilityMargin[remaining] > beta {
			return static - ReverseFutilityMargin[remaining]
		}
	}

	if pos.IsGameOver() {
		var score int
		if pos.IsInCheck(us) && len(pos.LegalMoves()) == 0 {
			score = -CHECKMATE + currentDepth
		} else {
			score = 0
		}
		ctx.TT.Put(hash, TTEntry{Flag: TTExact, LeafDistance: remaining, Value: score, BestMove: board.Move{}})
		return score
	}

	moves := SortedMoves(pos, currentDepth, hashMove, ctx.Heuristics, prevMove)

	var bestMove board.Move
	bestScore := -CHECKMATE - 1
	for moveCount, m := range moves {
		quiet := IsQuiet(pos, m, inCheck)

		if futilityPrunable && quiet && !isMateScore(alpha) && !isMateScore(beta) {
			continue
		}

		reduction := 0
		movesBeforeLMR := LMRMoves + 2*boolToInt(pvNode)
		if moveCount+1 >= movesBeforeLMR && quiet && !inCheck && remaining >= LMRLeafDistance && !pos.GivesCheck(m) {
			reduction = LMRReduction(remaining, moveCount+1)
		}

		undo := pos.MakeMove(m)
		score := -ctx.AlphaBeta(pos, currentDepth+1+reduction, maxDepth, -alpha-1, -alpha, true, m)
		if !IsAborted(score) && score > alpha && score < beta {
			score = -ctx.AlphaBeta(pos, currentDepth+1, maxDepth, -beta, -alpha, true, m)
		}
		pos.UnmakeMove(m, undo)

		if IsAborted(score) {
			return aborted
		}

		if score >= beta {
			if quiet {
				ctx.Heuristics.StoreKiller(currentDepth, m)
				ctx.Heuristics.UpdateHistory(us, m.From, m.To, remaining*remaining)
				if !prevMove.IsNull() {
					ctx.Heuristics.StoreCountermove(prevMove, m)
				}
			}
			ctx.TT.Put(hash, TTEntry{Flag: TTLower, LeafDistance: remaining, Value: beta, BestMove: m})
			return beta
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
			}
		}
	}

	flag := TTExact
	if alpha <= alphaOrig {
		flag = TTUpper
	}
	ctx.TT.Put(hash, TTEntry{Flag: flag, LeafDistance: remaining, Value: alpha, BestMove: bestMove})
	return alpha
}

// nullMoveReduction implements spec.md section 4.4.1 step 7's R formula.
func nullMoveReduction(remaining, static, beta int) int {
	r := 3 + remaining/3
	diff := (static - beta) / 200
	if diff > 3 {
		diff = 3
	}
	r += diff
	return r
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
