package board

// pseudoLegalMoves generates every pseudo-legal move for the side to move:
// legality with respect to leaving one's own king in check is filtered
// separately in LegalMoves, matching the teacher's generator/* + board's
// GenerateLegalMoves split (blunext-chess/generator/knight.go et al.) but
// consolidated into one file since this repo's movegen is a flat per-piece
// loop rather than a dedicated package.
func (pos *Position) pseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	us := pos.SideToMove()
	occupied := pos.Occupied()
	ownBB := pos.ColorBB(us)
	enemyBB := pos.ColorBB(us.Other())

	moves = pos.genPawnMoves(moves, us, occupied, enemyBB)

	for _, p := range []Piece{Knight, Bishop, Rook, Queen, King} {
		bb := *pos.PieceBB(p) & ownBB
		for bb != 0 {
			from := bb.PopLSB()
			targets := attacksOf(p, us, from, occupied) &^ ownBB
			for t := targets; t != 0; {
				to := t.PopLSB()
				captured := Empty
				if enemyBB.IsBitSet(to) {
					captured, _, _ = pos.PieceAt(to)
				}
				moves = append(moves, Move{From: from, To: to, Piece: p, Captured: captured})
			}
		}
	}

	moves = pos.genCastleMoves(moves, us, occupied)

	return moves
}

func (pos *Position) genPawnMoves(moves []Move, us Color, occupied, enemyBB Bitboard) []Move {
	pawns := pos.Pawns & pos.ColorBB(us)
	forward, startRank, promoRank := 8, 1, 7
	if us == Black {
		forward, startRank, promoRank = -8, 6, 0
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		r := rankOf(from)
		to := from + forward
		if to >= 0 && to < 64 && !occupied.IsBitSet(to) {
			moves = appendPawnMove(moves, from, to, rankOf(to) == promoRank, Empty, FlagNone)
			if r == startRank {
				to2 := to + forward
				if to2 >= 0 && to2 < 64 && !occupied.IsBitSet(to2) {
					moves = append(moves, Move{From: from, To: to2, Piece: Pawn, Flags: FlagDoublePush})
				}
			}
		}
		for _, capTo := range pawnCaptureSquares(from, us) {
			if capTo < 0 {
				continue
			}
			if enemyBB.IsBitSet(capTo) {
				captured, _, _ := pos.PieceAt(capTo)
				moves = appendPawnMove(moves, from, capTo, rankOf(capTo) == promoRank, captured, FlagNone)
			} else if pos.EnPassant != NoEnPassant && capTo == pos.EnPassant {
				moves = append(moves, Move{From: from, To: capTo, Piece: Pawn, Captured: Pawn, Flags: FlagEnPassant})
			}
		}
	}
	return moves
}

func pawnCaptureSquares(from int, c Color) [2]int {
	f, r := fileOf(from), rankOf(from)
	dr := 1
	if c == Black {
		dr = -1
	}
	sq := func(df int) int {
		nf, nr := f+df, r+dr
		if !onBoard(nf, nr) {
			return -1
		}
		return squareIndex(nf, nr)
	}
	return [2]int{sq(-1), sq(1)}
}

func appendPawnMove(moves []Move, from, to int, promotes bool, captured Piece, flag MoveFlag) []Move {
	if !promotes {
		return append(moves, Move{From: from, To: to, Piece: Pawn, Captured: captured, Flags: flag})
	}
	for _, promo := range [4]Piece{Queen, Rook, Bishop, Knight} {
		moves = append(moves, Move{From: from, To: to, Piece: Pawn, Captured: captured, Promotion: promo, Flags: flag})
	}
	return moves
}

type castleSpec struct {
	right               uint8
	kingFrom, kingTo    int
	rookFrom, rookTo    int
	mustBeEmpty         Bitboard
	mustNotBeAttacked   [3]int
}

var castleSpecs = [4]castleSpec{
	{CastleWhiteKingSide, 4, 6, 7, 5, SquareBB(5) | SquareBB(6), [3]int{4, 5, 6}},
	{CastleWhiteQueenSide, 4, 2, 0, 3, SquareBB(1) | SquareBB(2) | SquareBB(3), [3]int{4, 3, 2}},
	{CastleBlackKingSide, 60, 62, 63, 61, SquareBB(61) | SquareBB(62), [3]int{60, 61, 62}},
	{CastleBlackQueenSide, 60, 58, 56, 59, SquareBB(57) | SquareBB(58) | SquareBB(59), [3]int{60, 59, 58}},
}

func (pos *Position) genCastleMoves(moves []Move, us Color, occupied Bitboard) []Move {
	lo, hi := 0, 2
	if us == Black {
		lo, hi = 2, 4
	}
	for i := lo; i < hi; i++ {
		spec := castleSpecs[i]
		if pos.CastleRights&spec.right == 0 {
			continue
		}
		if occupied&spec.mustBeEmpty != 0 {
			continue
		}
		attacked := false
		for _, sq := range spec.mustNotBeAttacked {
			if pos.IsSquareAttacked(sq, us.Other()) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		moves = append(moves, Move{From: spec.kingFrom, To: spec.kingTo, Piece: King, Flags: FlagCastling})
	}
	return moves
}

// LegalMoves returns every legal move available to the side to move:
// pseudo-legal moves filtered by make/is-own-king-attacked/unmake, the
// standard (if not fastest) legality test, matching the teacher's
// GenerateLegalMoves.
func (pos *Position) LegalMoves() []Move {
	pseudo := pos.pseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	us := pos.SideToMove()
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		if !pos.IsInCheck(us) {
			legal = append(legal, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return legal
}

// GivesCheck reports whether playing m would leave the opponent in check.
func (pos *Position) GivesCheck(m Move) bool {
	undo := pos.MakeMove(m)
	check := pos.IsInCheck(pos.SideToMove())
	pos.UnmakeMove(m, undo)
	return check
}
