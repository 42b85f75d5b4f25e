package board

import "math/rand"

// Zobrist hashing keys for position identification. These are pseudo-random
// 64-bit numbers XORed in/out as pieces move, letting MakeMove/UnmakeMove
// maintain Position.Hash incrementally instead of recomputing it from
// scratch every ply. Grounded on blunext-chess/board/zobrist.go.
var (
	zobristPiece     [2][6][64]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// Fixed seed so the same position always hashes the same way across runs
	// (needed for deterministic tests and TT replay), matching the teacher.
	rng := rand.New(rand.NewSource(0x12345678DEADBEEF))

	for color := 0; color < 2; color++ {
		for piece := 0; piece < 6; piece++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[color][piece][sq] = rng.Uint64()
			}
		}
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.Uint64()
	}
	for i := 0; i < 8; i++ {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

func pieceIndex(p Piece) int { return int(p) - 1 }
func colorIndex(c Color) int { return int(c) }

// ComputeHash calculates the full Zobrist hash for a position from scratch.
// Used once when a position is created from FEN; MakeMove/UnmakeMove
// maintain it incrementally afterwards.
func (pos *Position) ComputeHash() uint64 {
	var hash uint64

	all := pos.Occupied()
	for sq := 0; sq < 64; sq++ {
		if !all.IsBitSet(sq) {
			continue
		}
		piece, color, _ := pos.PieceAt(sq)
		hash ^= zobristPiece[colorIndex(color)][pieceIndex(piece)][sq]
	}

	hash ^= zobristCastling[pos.CastleRights]

	if pos.EnPassant != NoEnPassant {
		hash ^= zobristEnPassant[fileOf(pos.EnPassant)]
	}
	if !pos.WhiteToMove {
		hash ^= zobristSide
	}

	return hash
}

// HashPiece returns the Zobrist key for a piece on a square.
func HashPiece(piece Piece, color Color, sq int) uint64 {
	return zobristPiece[colorIndex(color)][pieceIndex(piece)][sq]
}

// HashCastling returns the Zobrist key for a castling-rights bitmask.
func HashCastling(rights uint8) uint64 {
	return zobristCastling[rights]
}

// HashEnPassant returns the Zobrist key for an en-passant file (0-7).
func HashEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// HashSide returns the Zobrist key toggled whenever the side to move changes.
func HashSide() uint64 {
	return zobristSide
}
