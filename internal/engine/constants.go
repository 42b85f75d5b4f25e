// Package engine implements the search and evaluation core: a negamax
// alpha-beta tree search with transposition tables, quiescence, null-move
// pruning, futility/reverse-futility pruning, late-move reduction,
// principal-variation search, aspiration windows, and iterative deepening,
// ordered by a hash-move/killer/countermove/history/MVV-LVA pipeline and
// scored by a tapered material/PSQT/mobility/pawn-structure evaluator.
//
// Grounded on blunext-chess/engine/*.go (search.go, session.go, tt.go,
// eval.go) and, for the tapered evaluator shape specifically, on the piece
// values asserted in blunext-chess/engine/pesto_test.go — a test suite the
// teacher shipped for an EvaluatePeSTO the teacher never actually wrote
// (engine/eval.go there is material-only). The mg/eg piece values below
// reproduce that test's expectations; the piece-square tables are this
// package's own construction, built by buildPSQT below rather than
// transcribed from an external source, since nothing in the retrieval pack
// supplies literal PeSTO-style table constants to ground a transcription on.
package engine

import "math"

// CHECKMATE bounds every possible static evaluation (spec section 3); mate
// scores live in the reserved region near it.
const CHECKMATE = 100_000

// MateScoreThreshold: a score with |s| >= this is treated as a mate score.
const MateScoreThreshold = CHECKMATE - 1000

// MaxDepth bounds per-ply arrays (killers) and the iterative-deepening
// loop; LMR table lookups are clamped to lmrTableSize instead. Not given a value by spec.md; fixed here
// following original_source/qwertyquerty/madchess's shallow fixed horizons.
const MaxDepth = 64

// MaxPTableSize is the transposition table's logical entry capacity
// (spec.md section 3).
const MaxPTableSize = 1_000_000

// MaxHistoryValue and HistoryShrinkFactor bound the history heuristic table
// (spec.md section 3's "History Table"); fixed per SPEC_FULL.md section C.
const (
	MaxHistoryValue    = 1 << 20
	HistoryShrinkFactor = 2
)

// Search-tuning constants named by spec.md but left without fixed values
// there; fixed per SPEC_FULL.md section C, following the original's typical
// magnitudes and the teacher's own (disabled) pruning constants in spirit.
const (
	LMRMoves              = 4
	LMRLeafDistance       = 3
	FutilityDepth         = 3
	ReverseFutilityDepth  = 6
	QuiescenceCheckDepth  = 6
	StartingDepth         = 1
	AspirationWindowDepth = 5
)

// CPPawn is one pawn of centipawn value, used to derive the aspiration
// window default (spec.md section 4.5b).
const CPPawn = 100

const (
	AspirationWindowDefault      = CPPawn / 4
	AspirationIncreaseExponent   = 4
)

// FutilityMargin[remaining] and ReverseFutilityMargin[remaining] are the
// fixed (not phase-interpolated) pruning margins consulted in alphaBeta's pruning block
// (spec.md section 4.4.1 step 7). Index 0 is unused (futility never
// triggers at remaining==0, since the horizon check returns earlier).
var FutilityMargin = [FutilityDepth + 1]int{0, 150, 300, 450}

var ReverseFutilityMargin = [ReverseFutilityDepth + 1]int{
	0, 120, 240, 360, 480, 600, 720,
}

// lmrTableSize is N in spec.md's LMR_TABLE[i][j] = floor(0.25*ln(i+1)*ln(j+1)+0.7).
const lmrTableSize = 32

var lmrTable [lmrTableSize][lmrTableSize]int

func init() {
	for i := 0; i < lmrTableSize; i++ {
		for j := 0; j < lmrTableSize; j++ {
			lmrTable[i][j] = lmrReduction(i, j)
		}
	}
}

// lmrReduction implements spec.md's LMR_TABLE formula directly (not a
// table lookup at init time) so the rounding behavior is easy to audit;
// the cached lmrTable above exists purely to avoid repeating the two log
// calls on every late move at every node.
func lmrReduction(i, j int) int {
	return int(0.25*math.Log(float64(i+1))*math.Log(float64(j+1)) + 0.7)
}

// LMRReduction looks up the cached late-move-reduction amount, clamping
// indices into the table's bounds as spec.md's min(remaining, N-1) /
// min(move_count, N-1) describes.
func LMRReduction(remaining, moveCount int) int {
	i, j := remaining, moveCount
	if i >= lmrTableSize {
		i = lmrTableSize - 1
	}
	if j >= lmrTableSize {
		j = lmrTableSize - 1
	}
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	return lmrTable[i][j]
}
