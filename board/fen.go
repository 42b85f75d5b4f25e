package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var rune2Piece = map[rune]coloredPiece{
	'P': {Pawn, White}, 'N': {Knight, White}, 'B': {Bishop, White},
	'R': {Rook, White}, 'Q': {Queen, White}, 'K': {King, White},
	'p': {Pawn, Black}, 'n': {Knight, Black}, 'b': {Bishop, Black},
	'r': {Rook, Black}, 'q': {Queen, Black}, 'k': {King, Black},
}

var piece2Rune = map[Piece]rune{
	Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k',
}

// ParseFEN builds a Position from Forsyth-Edwards Notation. Grounded on
// blunext-chess/board/fen.go's CreatePositionFormFEN, reworked to return an
// error instead of calling log.Fatal on malformed input and to populate the
// Hash/HalfmoveClock/FullmoveNumber fields consistently.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.Errorf("board: malformed FEN %q: expected at least 4 fields, got %d", fen, len(fields))
	}

	cb, err := parsePiecePlacement(fields[0])
	if err != nil {
		return nil, errors.Wrapf(err, "board: parsing FEN %q", fen)
	}
	pos := createPosition(cb)

	pos.WhiteToMove = fields[1] == "w"

	rights, err := parseCastleRights(fields[2])
	if err != nil {
		return nil, errors.Wrapf(err, "board: parsing FEN %q", fen)
	}
	pos.CastleRights = rights

	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return nil, errors.Wrapf(err, "board: parsing FEN %q", fen)
	}
	pos.EnPassant = ep

	pos.HalfmoveClock = 0
	if len(fields) > 4 {
		if n, convErr := strconv.Atoi(fields[4]); convErr == nil {
			pos.HalfmoveClock = n
		}
	}
	pos.FullmoveNumber = 1
	if len(fields) > 5 {
		if n, convErr := strconv.Atoi(fields[5]); convErr == nil {
			pos.FullmoveNumber = n
		}
	}

	pos.Hash = pos.ComputeHash()
	pos.history = []uint64{pos.Hash}

	return &pos, nil
}

func parsePiecePlacement(piecePlacement string) (coloredBoard, error) {
	ranks := strings.Split(piecePlacement, "/")
	if len(ranks) != 8 {
		return coloredBoard{}, errors.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	slices.Reverse(ranks)

	b := coloredBoard{}
	for i := range b {
		b[i] = noPiece
	}
	idx := 0
	for _, rank := range ranks {
		for _, ch := range rank {
			switch {
			case unicode.IsDigit(ch):
				n, _ := strconv.Atoi(string(ch))
				idx += n
			case unicode.IsLetter(ch):
				cp, ok := rune2Piece[ch]
				if !ok {
					return coloredBoard{}, errors.Errorf("unknown piece character %q", ch)
				}
				if idx > 63 {
					return coloredBoard{}, errors.New("too many squares in piece placement")
				}
				b[idx] = cp
				idx++
			}
		}
	}
	return b, nil
}

func parseEnPassant(s string) (int, error) {
	if s == "-" {
		return NoEnPassant, nil
	}
	sq, ok := AlgebraicToIndex(s)
	if !ok {
		return NoEnPassant, errors.Errorf("bad en passant square %q", s)
	}
	return sq, nil
}

func parseCastleRights(s string) (uint8, error) {
	if s == "-" {
		return 0, nil
	}
	var rights uint8
	for _, ch := range s {
		switch ch {
		case 'K':
			rights |= CastleWhiteKingSide
		case 'Q':
			rights |= CastleWhiteQueenSide
		case 'k':
			rights |= CastleBlackKingSide
		case 'q':
			rights |= CastleBlackQueenSide
		default:
			return 0, errors.Errorf("bad castling rights %q", s)
		}
	}
	return rights, nil
}

// ToFEN renders the position back to Forsyth-Edwards Notation.
func (pos *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := squareIndex(file, rank)
			piece, color, ok := pos.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			ch := piece2Rune[piece]
			if color == White {
				ch = unicode.ToUpper(ch)
			}
			sb.WriteRune(ch)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}

	sb.WriteString(" ")
	if pos.WhiteToMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}

	sb.WriteString(" ")
	castling := ""
	if pos.CastleRights&CastleWhiteKingSide != 0 {
		castling += "K"
	}
	if pos.CastleRights&CastleWhiteQueenSide != 0 {
		castling += "Q"
	}
	if pos.CastleRights&CastleBlackKingSide != 0 {
		castling += "k"
	}
	if pos.CastleRights&CastleBlackQueenSide != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteString(" ")
	if pos.EnPassant == NoEnPassant {
		sb.WriteString("-")
	} else {
		sb.WriteString(IndexToAlgebraic(pos.EnPassant))
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullmoveNumber)

	return sb.String()
}
