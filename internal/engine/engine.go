package engine

import (
	"log"
	"strconv"
	"time"

	"github.com/meneldor/meneldor/internal/board"
)

// SearchInfo is reported to the UCI adapter after every completed
// iterative-deepening iteration.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int
}

// SearchLimits constrains a single search.
type SearchLimits struct {
	Depth    int           // maximum depth (0 = no limit)
	Nodes    uint64        // maximum nodes (0 = no limit)
	MoveTime time.Duration // fixed time for this move (0 = no limit)
	Infinite bool          // search until stopped
}

// Engine owns the transposition table and the single searcher used to
// answer UCI "go" commands. There is one searcher, not a worker pool: the
// search this engine runs is single-threaded iterative deepening, not
// Lazy SMP.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	contempt int

	// rootHistory holds Zobrist keys of positions reached since the last
	// irreversible move in the current game, for search-time repetition
	// detection.
	rootHistory []uint64

	// OnInfo, if set, is called after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table of the given
// size in MB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	e := &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
	log.Printf("[engine] transposition table sized for %d MB (%d entries)", ttSizeMB, tt.Capacity())
	return e
}

// SetContempt sets the draw score (centipawns, from the side-to-move's
// perspective) used both by search-internal repetition detection and by
// Evaluate's halfmove-clock draw case.
func (e *Engine) SetContempt(c int) {
	e.contempt = c
	e.searcher.SetContempt(c)
}

// SetPositionHistory installs the Zobrist key history for repetition
// detection; it should be called before SearchWithLimits/SearchWithUCILimits with
// the hashes of every position reached so far in the game.
func (e *Engine) SetPositionHistory(hashes []uint64) {
	e.rootHistory = append([]uint64(nil), hashes...)
	e.searcher.SetHistory(e.rootHistory)
}

// SearchWithLimits runs iterative deepening from pos under the given
// limits and returns the best move found. Each iteration is a full,
// unwindowed search at one depth deeper than the last; the loop stops
// early when the stop flag is set, a mate score is found, or a time or
// node limit is exceeded.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) board.Move {
	e.searcher.Reset()

	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = time.Now().Add(limits.MoveTime)
	}

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	startTime := time.Now()
	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		if limits.Nodes > 0 && e.searcher.Nodes() >= limits.Nodes {
			break
		}

		move, score := e.searcher.Search(pos, depth)
		if e.searcher.stopFlag.Load() {
			break
		}

		if move != board.NoMove {
			bestMove = move
			bestScore = score
		}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    bestScore,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(startTime),
				PV:       e.searcher.GetPV(),
				HashFull: e.tt.HashFull(),
			})
		}

		if bestScore > MateScore-100 || bestScore < -MateScore+100 {
			break
		}
		if !limits.Infinite && !deadline.IsZero() {
			elapsed := time.Since(startTime)
			if elapsed*2 > deadline.Sub(startTime) {
				break
			}
		}
	}

	return bestMove
}

// SearchWithUCILimits runs iterative deepening using UCI time controls
// (wtime/btime/winc/binc), stopping after the first iteration that
// completes past the time manager's optimum.
func (e *Engine) SearchWithUCILimits(pos *board.Position, limits UCILimits, ply int) board.Move {
	tm := NewTimeManager()
	tm.Init(limits, pos.SideToMove, ply)

	e.searcher.Reset()

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	startTime := time.Now()
	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		if tm.ShouldStop() {
			break
		}
		if limits.Nodes > 0 && e.searcher.Nodes() >= limits.Nodes {
			break
		}

		move, score := e.searcher.Search(pos, depth)
		if e.searcher.stopFlag.Load() {
			break
		}

		if move != board.NoMove {
			bestMove = move
			bestScore = score
		}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    bestScore,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(startTime),
				PV:       e.searcher.GetPV(),
				HashFull: e.tt.HashFull(),
			})
		}

		if bestScore > MateScore-100 || bestScore < -MateScore+100 {
			break
		}
		if !limits.Infinite && tm.PastOptimum() {
			break
		}
	}

	return bestMove
}

// Stop signals the running search to terminate at its next node-entry or
// iteration-boundary check.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear empties the transposition table, discarding all cached results.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Perft counts the leaf nodes reachable in exactly depth plies from pos.
func (e *Engine) Perft(pos *board.Position, depth int) int64 {
	return board.Perft(pos, depth)
}

// Evaluate returns the static evaluation of pos from the side-to-move's
// viewpoint.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos, e.contempt)
}

// ScoreToString renders a centipawn score as pawns with two decimals
// ("1.50", "-0.05") or a mate score as "Mate in N"/"Mated in N", for
// debug/CLI output rather than the UCI wire format.
func ScoreToString(score int) string {
	if score > MateScore-100 {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + strconv.Itoa(mateIn)
	}
	if score < -MateScore+100 {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + strconv.Itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100
	cents := strconv.Itoa(centipawns)
	if centipawns < 10 {
		cents = "0" + cents
	}
	return sign + strconv.Itoa(pawns) + "." + cents
}
