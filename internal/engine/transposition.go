package engine

import (
	"github.com/meneldor/meneldor/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry represents an entry in the transposition table. The full 64-bit
// key is stored (not a truncated upper half) so collisions are detected
// exactly rather than probabilistically.
type TTEntry struct {
	Key      uint64     // Full Zobrist hash, for exact collision detection
	BestMove board.Move // Best move found
	Score    int32      // Score (bounded by flag)
	Depth    int8       // Search depth
	Flag     TTFlag     // Type of bound
}

// TranspositionTable is a fixed-capacity ring of entries indexed by
// key mod capacity, with an always-replace policy: every Store overwrites
// whatever occupied that slot, and Probe trusts the full-key comparison
// rather than an age or generation counter to resolve collisions.
type TranspositionTable struct {
	entries  []TTEntry
	capacity uint64

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size
// in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	entrySize := uint64(24) // Key(8) + BestMove(2, padded) + Score(4) + Depth/Flag(2), rounded up
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries:  make([]TTEntry, numEntries),
		capacity: numEntries,
	}
}

// Probe looks up a position in the transposition table. Returns the entry
// and true only if the slot's full key matches hash exactly.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	idx := hash % tt.capacity
	entry := tt.entries[idx]

	if entry.Key == hash {
		tt.hits++
		return entry, true
	}

	return TTEntry{}, false
}

// Store always replaces whatever is at slot (hash mod capacity).
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	idx := hash % tt.capacity
	tt.entries[idx] = TTEntry{
		Key:      hash,
		BestMove: bestMove,
		Score:    int32(score),
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear empties the transposition table, discarding all entries.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is
// occupied, sampled over the first 1000 entries.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > tt.capacity {
		sampleSize = int(tt.capacity)
	}

	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Key != 0 {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Capacity returns the number of slots in the table.
func (tt *TranspositionTable) Capacity() uint64 {
	return tt.capacity
}

// AdjustScoreFromTT adjusts a mate score read from the table into a score
// relative to the current root, based on ply distance.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a mate score relative to the current root into
// one relative to the stored position, for storage in the table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
