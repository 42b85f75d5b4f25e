package board

// rules.go realizes the "Chess Rules Adapter" collaborator surface: the thin
// set of position/move queries the search and evaluator need and nothing
// more (piece-at, legal-move iteration, capture/check/game-over queries,
// repetition/draw detection, Zobrist hash, plies-since-start).

// IsCheckmate reports whether the side to move is checkmated.
func (pos *Position) IsCheckmate() bool {
	return pos.IsInCheck(pos.SideToMove()) && len(pos.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal moves but is not in check.
func (pos *Position) IsStalemate() bool {
	return !pos.IsInCheck(pos.SideToMove()) && len(pos.LegalMoves()) == 0
}

// InsufficientMaterial reports K vs K, K+minor vs K, and K+B vs K+B with
// same-colored bishops — the material configurations FIDE treats as a dead
// draw regardless of the move count.
func (pos *Position) InsufficientMaterial() bool {
	if pos.Pawns|pos.Rooks|pos.Queens != 0 {
		return false
	}
	minorCount := (pos.Knights | pos.Bishops).PopCount()
	if minorCount <= 1 {
		return true
	}
	if minorCount == 2 && pos.Knights == 0 {
		bishops := pos.Bishops.ToSlice()
		if len(bishops) == 2 && squareColor(bishops[0]) == squareColor(bishops[1]) {
			return true
		}
	}
	return false
}

func squareColor(sq int) int {
	return (fileOf(sq) + rankOf(sq)) % 2
}

// repetitionCount returns how many times the current hash has occurred in
// the recorded history (including the current position itself).
func (pos *Position) repetitionCount() int {
	count := 0
	current := pos.Hash
	for _, h := range pos.history {
		if h == current {
			count++
		}
	}
	return count
}

// IsFivefoldRepetition reports an automatic draw: the current position has
// occurred five times. Unlike threefold repetition, this requires no claim.
func (pos *Position) IsFivefoldRepetition() bool {
	return pos.repetitionCount() >= 5
}

// IsSeventyFiveMoveRule reports an automatic draw under the 75-move rule
// (150 consecutive halfmoves without a pawn move or capture).
func (pos *Position) IsSeventyFiveMoveRule() bool {
	return pos.HalfmoveClock >= 150
}

// IsClaimableDraw reports the claimable (not automatic) draw conditions:
// threefold repetition and the fifty-move rule. A caller that wants the
// stricter automatic forms only should use IsFivefoldRepetition /
// IsSeventyFiveMoveRule directly.
func (pos *Position) IsClaimableDraw() bool {
	return pos.repetitionCount() >= 3 || pos.HalfmoveClock >= 100
}

// IsDraw reports any automatically-applied draw: insufficient material,
// fivefold repetition, or the 75-move rule.
func (pos *Position) IsDraw() bool {
	return pos.InsufficientMaterial() || pos.IsFivefoldRepetition() || pos.IsSeventyFiveMoveRule()
}

// IsGameOver reports whether the game has ended by checkmate, stalemate, or
// an automatically-applied draw.
func (pos *Position) IsGameOver() bool {
	if pos.IsDraw() {
		return true
	}
	return len(pos.LegalMoves()) == 0
}
