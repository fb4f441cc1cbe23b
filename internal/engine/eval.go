// Package engine implements the chess search engine: evaluation, move
// ordering, the transposition table, and the iterative-deepening negamax
// search that drives the UCI adapter's "go" command.
package engine

import (
	"github.com/meneldor/meneldor/internal/board"
)

// Evaluation constants, material only. King has no material value here —
// its presence is guaranteed by the Position invariant, not scored.
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 300
	RookValue   = 500
	QueenValue  = 900
)

var pieceValues = [5]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue}

// Evaluate scores pos from the side-to-move's viewpoint: positive favors
// the side to move. It is material (own minus enemy, weighted by
// pieceValues) plus mobility (popcount of every square attacked by the
// side to move). Checkmate and stalemate are scored by Searcher.negamax
// only at nodes with depth remaining; Evaluate does not detect them, so a
// mated or stalemated position reached in quiescence is scored by material
// and mobility. The halfmove-clock contempt rule lives here since it
// doesn't depend on move generation.
func Evaluate(pos *board.Position, contempt int) int {
	if pos.HalfMoveClock >= 100 {
		return contempt
	}

	us := pos.SideToMove
	them := us.Other()

	score := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		diff := pos.Pieces[us][pt].PopCount() - pos.Pieces[them][pt].PopCount()
		score += diff * pieceValues[pt]
	}

	score += mobility(pos, us)

	return score
}

// mobility returns the popcount of every square attacked by every piece of
// color c, ignoring friendly occupancy (an attacked-but-occupied square
// still counts, matching the spec's "popcount of all squares attacked").
func mobility(pos *board.Position, c board.Color) int {
	occ := pos.AllOccupied
	var attacked board.Bitboard

	knights := pos.Pieces[c][board.Knight]
	for knights != 0 {
		attacked |= board.KnightAttacks(knights.PopLSB())
	}
	bishops := pos.Pieces[c][board.Bishop]
	for bishops != 0 {
		attacked |= board.BishopAttacks(bishops.PopLSB(), occ)
	}
	rooks := pos.Pieces[c][board.Rook]
	for rooks != 0 {
		attacked |= board.RookAttacks(rooks.PopLSB(), occ)
	}
	queens := pos.Pieces[c][board.Queen]
	for queens != 0 {
		attacked |= board.QueenAttacks(queens.PopLSB(), occ)
	}
	pawns := pos.Pieces[c][board.Pawn]
	for pawns != 0 {
		attacked |= board.PawnAttacks(pawns.PopLSB(), c)
	}
	king := pos.Pieces[c][board.King]
	if king != 0 {
		attacked |= board.KingAttacks(king.LSB())
	}

	return attacked.PopCount()
}
