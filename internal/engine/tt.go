package engine

import "forge/board"

// TTFlag classifies a stored transposition value, matching the teacher's
// blunext-chess/engine/tt.go TTFlag enum in spirit.
type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

// TTEntry is the packed transposition record of spec.md section 3.
type TTEntry struct {
	Flag         TTFlag
	LeafDistance int
	Value        int
	BestMove     board.Move
}

// TranspositionTable is a Zobrist-keyed, bounded-capacity map of TTEntry,
// matching spec.md section 3's replacement policy exactly: overwrite on the
// same key, otherwise insert only while below capacity (no eviction of a
// different key). This deliberately diverges from the teacher's own
// transposition table (blunext-chess/engine/tt.go), which is a fixed-size
// array with always-replace semantics keyed by hash-modulo-size — a faster
// design, but not the one spec.md section 3 and section 4.3 specify; see
// DESIGN.md for the justification.
type TranspositionTable struct {
	entries map[uint64]TTEntry
}

// NewTranspositionTable creates an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[uint64]TTEntry)}
}

// Clear empties the table; called at the start of every iterative-deepening
// search per spec.md section 3's Lifecycle note.
func (tt *TranspositionTable) Clear() {
	tt.entries = make(map[uint64]TTEntry)
}

// Get returns the entry for hash, if present.
func (tt *TranspositionTable) Get(hash uint64) (TTEntry, bool) {
	e, ok := tt.entries[hash]
	return e, ok
}

// Put stores entry under hash subject to spec.md section 4.3's capacity
// rule: overwrite if hash is already present, otherwise insert only if the
// table is below MaxPTableSize.
func (tt *TranspositionTable) Put(hash uint64, entry TTEntry) {
	if _, exists := tt.entries[hash]; !exists && len(tt.entries) >= MaxPTableSize {
		return
	}
	tt.entries[hash] = entry
}

// Len reports the number of entries currently stored.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// Hashfull reports fullness in permille (0-1000), the UCI `info hashfull` unit.
func (tt *TranspositionTable) Hashfull() int {
	return len(tt.entries) * 1000 / MaxPTableSize
}
