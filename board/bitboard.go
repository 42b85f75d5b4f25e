// Package board Layout: https://gekomad.github.io/Cinnamon/BitboardCalculator/
//
//	56	57	58	59	60	61	62	63
//	48	49	50	51	52	53	54	55
//	40	41	42	43	44	45	46	47
//	32	33	34	35	36	37	38	39
//	24	25	26	27	28	29	30	31
//	16	17	18	19	20	21	22	23
//	08	09	10	11	12	13	14	15
//	00	01	02	03	04	05	06	07
package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, one bit per square, a1=0 .. h8=63.
type Bitboard uint64

const (
	FileA = 0
	FileH = 7
	Rank1 = 0
	Rank8 = 7
)

func squareIndex(file, rank int) int {
	return rank*8 + file
}

func fileOf(sq int) int { return sq & 7 }
func rankOf(sq int) int { return sq >> 3 }

func (b Bitboard) IsBitSet(index int) bool {
	return b&(1<<uint(index)) != 0
}

func (b *Bitboard) SetBit(index int) {
	*b |= 1 << uint(index)
}

func (b *Bitboard) ClearBit(index int) {
	*b &^= 1 << uint(index)
}

// SquareBB returns a bitboard with a single bit set at index.
func SquareBB(index int) Bitboard {
	return Bitboard(1) << uint(index)
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the index of the least significant set bit, or -1 if empty.
func (b Bitboard) LSB() int {
	if b == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(b))
}

// PopLSB clears and returns the index of the least significant set bit.
func (b *Bitboard) PopLSB() int {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// ToSlice returns the set squares as a slice of square indices.
func (b Bitboard) ToSlice() []int {
	squares := make([]int, 0, b.PopCount())
	bb := b
	for bb != 0 {
		squares = append(squares, bb.PopLSB())
	}
	return squares
}

func (b Bitboard) Pretty() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.IsBitSet(squareIndex(f, r)) {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		fmt.Fprintf(&sb, "| %d\n+---+---+---+---+---+---+---+---+\n", r+1)
	}
	sb.WriteString("  a   b   c   d   e   f   g   h\n")
	return sb.String()
}

// IndexToAlgebraic converts a square index to algebraic notation (e.g., 0 -> "a1").
func IndexToAlgebraic(idx int) string {
	if idx < 0 || idx > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+fileOf(idx), rankOf(idx)+1)
}

// AlgebraicToIndex parses algebraic notation (e.g., "e4") into a square index.
func AlgebraicToIndex(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return squareIndex(file, rank), true
}
