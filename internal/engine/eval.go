package engine

import "forge/board"

// Phased piece values, reproducing the constants blunext-chess/engine/pesto_test.go
// asserts for EvaluatePeSTO (a function the teacher's own engine/eval.go never
// actually implements — its Evaluate is material-only).
var mgPieceValue = [7]int{0, 82, 337, 365, 477, 1025, 0}
var egPieceValue = [7]int{0, 94, 281, 297, 512, 936, 0}

// mgPSQT/egPSQT are [piece][square] tables, square indexed a1=0..h8=63,
// white POV (black pieces mirror vertically before lookup, per spec.md
// section 4.1 step 3). Built by buildPSQT rather than transcribed from a
// published table; see the package doc comment for why.
var mgPSQT [7][64]int
var egPSQT [7][64]int

// mgMobility/egMobility are phased mobility bonuses indexed [piece][attacks],
// capped at 27 (a queen's maximum attack count); spec.md section 4.1 step 3
// explicitly omits pawn and king mobility, so those rows stay zero.
var mgMobility [7][28]int
var egMobility [7][28]int

const (
	doubleBishopMG = 15
	doubleBishopEG = 30

	doubledPawnPenaltyMG  = 8
	doubledPawnPenaltyEG  = 16
	tripledPawnPenaltyMG  = 16
	tripledPawnPenaltyEG  = 32
	isolatedPawnPenaltyMG = 10
	isolatedPawnPenaltyEG = 20

	tempoBonusMG = 18
	tempoBonusEG = 6
)

func init() {
	buildPSQT()
	buildMobility()
}

// centerDistance returns how many squares (Chebyshev) sq is from the
// board's geometric center, 0..3.5 rounded down to an int 0..3.
func centerDistance(sq int) int {
	f, r := fileOf(sq), rankOf(sq)
	fd := 3 - f
	if f > 3 {
		fd = f - 4
	}
	rd := 3 - r
	if r > 3 {
		rd = r - 4
	}
	d := fd
	if rd > d {
		d = rd
	}
	return d
}

func fileOf(sq int) int { return sq & 7 }
func rankOf(sq int) int { return sq >> 3 }

// buildPSQT constructs per-piece positional tables from simple, reviewable
// shape rules: pieces other than pawns and kings favor centralization
// (strongest in the endgame for knights/kings, mildly in the midgame for
// bishops/rooks/queens); pawns favor central files and advancing ranks;
// kings favor the back rank and corners in the midgame (castled safety)
// and the center in the endgame (activity in king-and-pawn endings).
func buildPSQT() {
	centerBonus := [4]int{24, 12, 0, -12}

	for sq := 0; sq < 64; sq++ {
		c := centerBonus[centerDistance(sq)]
		mgPSQT[Knight][sq] = c
		egPSQT[Knight][sq] = c * 2
		mgPSQT[Bishop][sq] = c / 2
		egPSQT[Bishop][sq] = c
		mgPSQT[Rook][sq] = c / 4
		egPSQT[Rook][sq] = c / 2
		mgPSQT[Queen][sq] = c / 3
		egPSQT[Queen][sq] = c

		r := rankOf(sq)
		mgPSQT[King][sq] = -c
		if r == 0 {
			mgPSQT[King][sq] += 20
		}
		egPSQT[King][sq] = c * 2

		f := fileOf(sq)
		centerFileBonus := 0
		switch f {
		case 3, 4:
			centerFileBonus = 12
		case 2, 5:
			centerFileBonus = 4
		}
		mgPSQT[Pawn][sq] = centerFileBonus + r*2
		egPSQT[Pawn][sq] = r * 4
	}
}

// buildMobility constructs phased per-attack-count bonuses: a diminishing
// marginal return curve, stronger in the endgame for minor/major pieces
// (spec.md section 4.1 step 3 names mobility as `attacks` = squares attacked
// from sq, lerped between mg/eg tables; pawn and king rows are left zero).
func buildMobility() {
	for _, p := range []Piece{Knight, Bishop, Rook, Queen} {
		for n := 0; n < 28; n++ {
			mgMobility[p][n] = 3 * n
			egMobility[p][n] = 4 * n
		}
	}
}

// Piece is an alias of board.Piece kept local to this package's evaluator
// tables so they read naturally as engine-domain code, matching the
// teacher's style of importing board types directly rather than wrapping them.
type Piece = board.Piece

const (
	Empty  = board.Empty
	Pawn   = board.Pawn
	Knight = board.Knight
	Bishop = board.Bishop
	Rook   = board.Rook
	Queen  = board.Queen
	King   = board.King
)

func lerp(mg, eg, phase256 int) int {
	return (mg*(256-phase256) + eg*phase256) / 256
}

// gamePhase computes phase256 in [0,256]; 0 is opening, 256 is pure endgame,
// per spec.md section 4.1 step 2 (with phase represented as an integer 0..256
// substitute for the floating phi, per spec.md section 9).
func gamePhase(pos *board.Position) int {
	total := pos.Pawns.PopCount()*1 +
		pos.Knights.PopCount()*10 +
		pos.Bishops.PopCount()*10 +
		pos.Rooks.PopCount()*20 +
		pos.Queens.PopCount()*40

	phase := 256 - total
	if phase < 0 {
		phase = 0
	}
	if phase > 256 {
		phase = 256
	}
	return phase
}

func mirror(sq int) int {
	return sq ^ 56
}

func colorMod(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

// Evaluate returns a centipawn score from the side-to-move's perspective,
// implementing spec.md section 4.1's score_board. Grounded on
// blunext-chess/engine/eval.go's Evaluate signature and structure, widened
// from material-only to the full tapered evaluator spec.md section 4.1
// describes (and that blunext-chess/engine/pesto_test.go was written
// against but the teacher never finished).
func Evaluate(pos *board.Position) int {
	if isDrawnForEval(pos) {
		return 0
	}

	phase := gamePhase(pos)

	var score int
	var bishopCount [2]int
	var pawnFiles [2][8]int

	occupied := pos.Occupied()
	for sq := 0; sq < 64; sq++ {
		piece, color, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		mod := colorMod(color)
		lookupSq := sq
		if color == board.Black {
			lookupSq = mirror(sq)
		}

		score += lerp(mgPSQT[piece][lookupSq], egPSQT[piece][lookupSq], phase) * mod
		score += pushBonus(piece, lookupSq, phase) * mod
		score += lerp(mgPieceValue[piece], egPieceValue[piece], phase) * mod

		if piece != Pawn && piece != King {
			attacks := attackCount(pos, piece, color, sq, occupied)
			score += lerp(mgMobility[piece][attacks], egMobility[piece][attacks], phase) * mod
		}

		if piece == Bishop {
			bishopCount[color]++
		}
		if piece == Pawn {
			pawnFiles[color][fileOf(sq)]++
		}
	}

	if bishopCount[board.White] == 2 {
		score += lerp(doubleBishopMG, doubleBishopEG, phase)
	}
	if bishopCount[board.Black] == 2 {
		score -= lerp(doubleBishopMG, doubleBishopEG, phase)
	}

	score += pawnStructureScore(pawnFiles, phase)

	score *= colorMod(pos.SideToMove())
	score += lerp(tempoBonusMG, tempoBonusEG, phase)

	return score
}

// pushBonus is the "will-to-push" bonus of spec.md section 4.1 step 3: a
// per-rank bonus (white POV rank, already mirrored for black) encouraging
// pawn advance. Non-pawns get no bonus from this term.
func pushBonus(piece Piece, lookupSq int, phase int) int {
	rank := rankOf(lookupSq)
	if piece == Pawn {
		return lerp(rank*rank, rank*rank*2, phase)
	}
	return 0
}

func attackCount(pos *board.Position, piece Piece, color board.Color, sq int, occupied board.Bitboard) int {
	attacks := pos.AttacksFrom(piece, color, sq, occupied)
	n := attacks.PopCount()
	if n > 27 {
		n = 27
	}
	return n
}

func pawnStructureScore(pawnFiles [2][8]int, phase int) int {
	var score int
	for color := 0; color < 2; color++ {
		mod := colorMod(board.Color(color))
		for f := 0; f < 8; f++ {
			count := pawnFiles[color][f]
			switch {
			case count == 2:
				score -= lerp(doubledPawnPenaltyMG, doubledPawnPenaltyEG, phase) * mod
			case count > 2:
				score -= lerp(tripledPawnPenaltyMG, tripledPawnPenaltyEG, phase) * mod
			}
			if count == 0 {
				continue
			}
			leftEmpty := f == 0 || pawnFiles[color][f-1] == 0
			rightEmpty := f == 7 || pawnFiles[color][f+1] == 0
			if leftEmpty && rightEmpty {
				score -= lerp(isolatedPawnPenaltyMG, isolatedPawnPenaltyEG, phase) * mod
			}
		}
	}
	return score
}

// isDrawnForEval implements spec.md section 4.1 step 1: fivefold
// repetition, insufficient material, stalemate, or a claimable draw all
// evaluate to 0 before any term is computed.
func isDrawnForEval(pos *board.Position) bool {
	if pos.IsFivefoldRepetition() || pos.InsufficientMaterial() || pos.IsClaimableDraw() {
		return true
	}
	return pos.IsStalemate()
}
