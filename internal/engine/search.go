package engine

import (
	"sync/atomic"

	"github.com/meneldor/meneldor/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs fixed-depth negamax searches with alpha-beta pruning,
// quiescence extension, and transposition-table cutoffs; Engine drives it
// one depth at a time for iterative deepening. One Searcher instance is reused across searches within an
// engine session; it owns no position of its own beyond the copy it
// takes at the start of each Search call.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer
	contempt int

	// rootHistory holds the Zobrist keys of positions reached earlier in
	// the actual game since the last irreversible move (set by the
	// caller before Search via SetHistory). pathHashes records the hash
	// at each ply visited during the current search, so a position that
	// repeats either in real game history or within the current search
	// line is recognized without a full three-fold count.
	rootHistory []uint64
	pathHashes  [MaxPly]uint64

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	undoStack [MaxPly]board.UndoInfo
}

// NewSearcher creates a new searcher sharing the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Stop signals the search to terminate at the next node-entry or
// iteration-boundary check.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset clears per-search state without touching the shared transposition
// table or configuration (contempt, root history).
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
}

// Nodes returns the number of nodes searched in the most recent call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// SetContempt sets the score (in centipawns, from the side-to-move's
// viewpoint at the drawn node) substituted for draws, so the engine
// slightly favors or avoids them.
func (s *Searcher) SetContempt(c int) {
	s.contempt = c
}

// SetHistory installs the list of Zobrist keys reached since the last
// irreversible move in the actual game, used by the repetition check at
// the start of each negamax call. Ownership of the slice stays with the
// caller; Searcher only reads it during Search.
func (s *Searcher) SetHistory(keys []uint64) {
	s.rootHistory = keys
}

// Search performs a single fixed-depth search from pos and returns the
// best move found along with its score. Search takes and mutates a copy
// of pos, leaving the caller's position untouched.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.nodes = 0

	score := s.negamax(depth, 0, -Infinity, Infinity)

	var bestMove board.Move
	if s.pv.length[0] > 0 {
		bestMove = s.pv.moves[0][0]
	}

	return bestMove, score
}

// negamax implements the negamax algorithm with alpha-beta pruning.
func (s *Searcher) negamax(depth, ply int, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopFlag.Load() {
		return 0
	}

	s.nodes++
	s.pv.length[ply] = ply
	s.pathHashes[ply] = s.pos.Hash

	if ply > 0 && s.isRepetition(ply) {
		return s.contempt
	}

	var ttMove board.Move
	ttEntry, found := s.tt.Probe(s.pos.Hash)
	if found && int(ttEntry.Depth) >= depth {
		score := AdjustScoreFromTT(int(ttEntry.Score), ply)
		switch ttEntry.Flag {
		case TTExact:
			return score
		case TTLowerBound:
			if score > alpha {
				alpha = score
			}
		case TTUpperBound:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return score
		}
	}
	if found {
		ttMove = ttEntry.BestMove
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	inCheck := s.pos.InCheck()
	moves := s.pos.GenerateLegalMoves()

	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	s.orderer.SortMoves(s.pos, moves, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)

		s.undoStack[ply] = s.pos.MakeMove(move)
		if !s.undoStack[ply].Valid {
			s.pos.UnmakeMove(move, s.undoStack[ply])
			continue
		}

		score := -s.negamax(depth-1, ply+1, -beta, -alpha)

		s.pos.UnmakeMove(move, s.undoStack[ply])

		if s.stopFlag.Load() {
			return 0
		}

		if score >= beta {
			s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, move)
			return beta
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score > alpha {
			alpha = score
			flag = TTExact

			s.pv.moves[ply][ply] = move
			for j := ply + 1; j < s.pv.length[ply+1]; j++ {
				s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
			}
			s.pv.length[ply] = s.pv.length[ply+1]
		}
	}

	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(alpha, ply), flag, bestMove)

	return alpha
}

// isRepetition reports whether the position at the current ply (already
// recorded in s.pathHashes[ply]) has occurred earlier — either in the
// real game's history since the last irreversible move, or earlier in
// this same search line.
func (s *Searcher) isRepetition(ply int) bool {
	h := s.pathHashes[ply]
	for i := 0; i < ply; i++ {
		if s.pathHashes[i] == h {
			return true
		}
	}
	for _, rh := range s.rootHistory {
		if rh == h {
			return true
		}
	}
	return false
}

// quiescence searches only captures and pawn push-promotions (and
// check-evasions implicitly, via legal-move filtering) to avoid the horizon
// effect. Recursion stops at ply MaxPly-1, where the static evaluation is
// returned.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	if s.stopFlag.Load() {
		return 0
	}
	if ply >= MaxPly-1 {
		return Evaluate(s.pos, s.contempt)
	}

	s.nodes++

	standPat := Evaluate(s.pos, s.contempt)

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	bigDelta := QueenValue
	if standPat+bigDelta < alpha {
		return alpha
	}

	moves := s.pos.GenerateCaptures()
	s.orderer.SortMoves(s.pos, moves, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)

		if !s.pos.InCheck() {
			var captureValue int
			if move.IsEnPassant() {
				captureValue = PawnValue
			} else if captured := s.pos.PieceAt(move.To()); captured != board.NoPiece {
				captureValue = pieceValues[captured.Type()]
			}
			if move.IsPromotion() {
				captureValue += QueenValue - PawnValue
			}
			if standPat+captureValue+200 < alpha {
				continue
			}
		}

		undo := s.pos.MakeMove(move)
		if !undo.Valid {
			s.pos.UnmakeMove(move, undo)
			continue
		}

		score := -s.quiescence(ply+1, -beta, -alpha)

		s.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	for i := 0; i < s.pv.length[0]; i++ {
		pv[i] = s.pv.moves[0][i]
	}
	return pv
}
