package board

// UndoInfo stores the state needed to unmake a move without recomputing it,
// matching the teacher's board.UndoInfo (blunext-chess/board/makemove.go).
type UndoInfo struct {
	CapturedPiece Piece
	CastleRights  uint8
	EnPassant     int
	HalfmoveClock int
	Hash          uint64
}

var rookFromCastleRight = map[int]uint8{
	0: CastleWhiteQueenSide, 7: CastleWhiteKingSide,
	56: CastleBlackQueenSide, 63: CastleBlackKingSide,
}

// MakeMove executes m on the position in-place and returns the undo
// information needed to reverse it. Grounded on blunext-chess/board/makemove.go,
// reworked for index-based Move and to maintain Position.Hash/Ply/history
// incrementally rather than leaving Hash unmaintained after the initial
// FEN parse.
func (pos *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece: m.Captured,
		CastleRights:  pos.CastleRights,
		EnPassant:     pos.EnPassant,
		HalfmoveClock: pos.HalfmoveClock,
		Hash:          pos.Hash,
	}

	us := pos.SideToMove()
	them := us.Other()
	ourBB := pos.colorBBPtr(us)
	theirBB := pos.colorBBPtr(them)

	pieceBB := pos.PieceBB(m.Piece)
	pieceBB.ClearBit(m.From)
	*ourBB &^= SquareBB(m.From)
	pos.Hash ^= HashPiece(m.Piece, us, m.From)

	if m.Captured != Empty {
		if m.Flags == FlagEnPassant {
			capSq := m.To - 8
			if us == Black {
				capSq = m.To + 8
			}
			pos.Pawns.ClearBit(capSq)
			*theirBB &^= SquareBB(capSq)
			pos.Hash ^= HashPiece(Pawn, them, capSq)
		} else {
			capturedBB := pos.PieceBB(m.Captured)
			capturedBB.ClearBit(m.To)
			*theirBB &^= SquareBB(m.To)
			pos.Hash ^= HashPiece(m.Captured, them, m.To)
		}
	}

	if m.Promotion != Empty {
		promoBB := pos.PieceBB(m.Promotion)
		promoBB.SetBit(m.To)
		pos.Hash ^= HashPiece(m.Promotion, us, m.To)
	} else {
		pieceBB.SetBit(m.To)
		pos.Hash ^= HashPiece(m.Piece, us, m.To)
	}
	*ourBB |= SquareBB(m.To)

	if m.Flags == FlagCastling {
		pos.moveCastleRook(m.To, us)
	}

	pos.Hash ^= HashCastling(pos.CastleRights)
	if m.Piece == King {
		if us == White {
			pos.CastleRights &^= CastleWhiteKingSide | CastleWhiteQueenSide
		} else {
			pos.CastleRights &^= CastleBlackKingSide | CastleBlackQueenSide
		}
	}
	if right, ok := rookFromCastleRight[m.From]; ok {
		pos.CastleRights &^= right
	}
	if right, ok := rookFromCastleRight[m.To]; ok {
		pos.CastleRights &^= right
	}
	pos.Hash ^= HashCastling(pos.CastleRights)

	if pos.EnPassant != NoEnPassant {
		pos.Hash ^= HashEnPassant(fileOf(pos.EnPassant))
	}
	pos.EnPassant = NoEnPassant
	if m.Flags == FlagDoublePush {
		pos.EnPassant = (m.From + m.To) / 2
		pos.Hash ^= HashEnPassant(fileOf(pos.EnPassant))
	}

	if m.Piece == Pawn || m.Captured != Empty {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}

	if us == Black {
		pos.FullmoveNumber++
	}

	pos.WhiteToMove = !pos.WhiteToMove
	pos.Hash ^= HashSide()
	pos.Ply++
	pos.history = append(pos.history, pos.Hash)

	return undo
}

func findCastleSpec(kingTo int, us Color) castleSpec {
	whiteRights := uint8(CastleWhiteKingSide | CastleWhiteQueenSide)
	blackRights := uint8(CastleBlackKingSide | CastleBlackQueenSide)
	for _, s := range castleSpecs {
		if s.kingTo != kingTo {
			continue
		}
		if us == White && s.right&whiteRights != 0 {
			return s
		}
		if us == Black && s.right&blackRights != 0 {
			return s
		}
	}
	return castleSpec{}
}

func (pos *Position) moveCastleRook(kingTo int, us Color) {
	spec := findCastleSpec(kingTo, us)
	rookBB := pos.colorBBPtr(us)
	pos.Rooks.ClearBit(spec.rookFrom)
	pos.Rooks.SetBit(spec.rookTo)
	*rookBB &^= SquareBB(spec.rookFrom)
	*rookBB |= SquareBB(spec.rookTo)
	pos.Hash ^= HashPiece(Rook, us, spec.rookFrom)
	pos.Hash ^= HashPiece(Rook, us, spec.rookTo)
}

// UnmakeMove reverses m using the undo information MakeMove returned.
func (pos *Position) UnmakeMove(m Move, undo UndoInfo) {
	pos.history = pos.history[:len(pos.history)-1]
	pos.Ply--
	pos.WhiteToMove = !pos.WhiteToMove
	if !pos.WhiteToMove {
		pos.FullmoveNumber--
	}

	us := pos.SideToMove()
	ourBB := pos.colorBBPtr(us)
	theirBB := pos.colorBBPtr(us.Other())

	if m.Flags == FlagCastling {
		pos.unmoveCastleRook(m.To, us)
	}

	if m.Promotion != Empty {
		promoBB := pos.PieceBB(m.Promotion)
		promoBB.ClearBit(m.To)
	} else {
		pieceBB := pos.PieceBB(m.Piece)
		pieceBB.ClearBit(m.To)
	}
	*ourBB &^= SquareBB(m.To)

	pieceBB := pos.PieceBB(m.Piece)
	pieceBB.SetBit(m.From)
	*ourBB |= SquareBB(m.From)

	if undo.CapturedPiece != Empty {
		if m.Flags == FlagEnPassant {
			capSq := m.To - 8
			if us == Black {
				capSq = m.To + 8
			}
			pos.Pawns.SetBit(capSq)
			*theirBB |= SquareBB(capSq)
		} else {
			capturedBB := pos.PieceBB(undo.CapturedPiece)
			capturedBB.SetBit(m.To)
			*theirBB |= SquareBB(m.To)
		}
	}

	pos.CastleRights = undo.CastleRights
	pos.EnPassant = undo.EnPassant
	pos.HalfmoveClock = undo.HalfmoveClock
	pos.Hash = undo.Hash
}

func (pos *Position) unmoveCastleRook(kingTo int, us Color) {
	spec := findCastleSpec(kingTo, us)
	rookBB := pos.colorBBPtr(us)
	pos.Rooks.ClearBit(spec.rookTo)
	pos.Rooks.SetBit(spec.rookFrom)
	*rookBB &^= SquareBB(spec.rookTo)
	*rookBB |= SquareBB(spec.rookFrom)
}

// MakeNullMove passes the turn without moving a piece, used by null-move
// pruning (spec.md section 4.4.1). Returns the undo state for UnmakeNullMove.
func (pos *Position) MakeNullMove() UndoInfo {
	undo := UndoInfo{EnPassant: pos.EnPassant, Hash: pos.Hash}
	if pos.EnPassant != NoEnPassant {
		pos.Hash ^= HashEnPassant(fileOf(pos.EnPassant))
	}
	pos.EnPassant = NoEnPassant
	pos.WhiteToMove = !pos.WhiteToMove
	pos.Hash ^= HashSide()
	pos.Ply++
	pos.history = append(pos.history, pos.Hash)
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (pos *Position) UnmakeNullMove(undo UndoInfo) {
	pos.history = pos.history[:len(pos.history)-1]
	pos.Ply--
	pos.WhiteToMove = !pos.WhiteToMove
	pos.EnPassant = undo.EnPassant
	pos.Hash = undo.Hash
}
