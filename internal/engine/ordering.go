package engine

import (
	"sort"

	"github.com/meneldor/meneldor/internal/board"
)

// orderingPieceValue is the coarse per-move-ordering value scale: pawn=1,
// knight=bishop=3, rook=5, queen=9, king=10, empty=0. This is deliberately
// a different, coarser scale than board.PieceValue's centipawn material
// values used by the evaluator — move ordering only needs a cheap,
// deterministic ranking, not an accurate material count.
var orderingPieceValue = [7]int{1, 3, 3, 5, 9, 10, 0}

// TTMoveScore is added to whatever move matches the transposition table's
// suggested best move, so it always sorts to the front regardless of its
// own victim/mover score.
const TTMoveScore = 1 << 30

// MoveOrderer scores and sorts move lists for search. Ordering is a single
// heuristic — score(m) = piece_value[victim] - piece_value[mover] — plus
// promotion of the transposition table's best move to the front.
type MoveOrderer struct{}

// NewMoveOrderer creates a move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// scoreMove computes score(m) = piece_value[victim] - piece_value[mover].
// Non-captures have victim=empty=0, so a quiet move scores minus its
// mover's value; it ranks below every capture by an equal or cheaper piece,
// but can rank above a capture by a dearer one (a quiet knight move, -3,
// outranks queen-takes-pawn, -8).
func scoreMove(pos *board.Position, m board.Move) int {
	mover := pos.PieceAt(m.From())
	moverValue := orderingPieceValue[mover.Type()]

	var victimValue int
	if m.IsEnPassant() {
		victimValue = orderingPieceValue[board.Pawn]
	} else if victim := pos.PieceAt(m.To()); victim != board.NoPiece {
		victimValue = orderingPieceValue[victim.Type()]
	}

	return victimValue - moverValue
}

// SortMoves sorts moves in-place in descending order of scoreMove, with
// ttMove (if present in the list) promoted to the front. The sort is
// deterministic for reproducible test output.
func (o *MoveOrderer) SortMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		m := ml.Get(i)
		s := scoreMove(pos, m)
		if ttMove != board.NoMove && m == ttMove {
			s += TTMoveScore
		}
		scores[i] = s
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	sorted := make([]board.Move, n)
	for i, j := range idx {
		sorted[i] = ml.Get(j)
	}
	for i := 0; i < n; i++ {
		ml.Set(i, sorted[i])
	}
}
