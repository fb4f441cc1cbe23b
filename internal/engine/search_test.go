package engine

import (
	"testing"

	"github.com/meneldor/meneldor/internal/board"
	"github.com/stretchr/testify/require"
)

// TestSearchIsDeterministic implements the search-reproducibility scenario:
// from the start position with a fixed depth and evaluator, the bestmove
// returned by repeated searches must be identical.
func TestSearchIsDeterministic(t *testing.T) {
	pos := board.NewPosition()

	run := func() (board.Move, int) {
		tt := NewTranspositionTable(1)
		s := NewSearcher(tt)
		return s.Search(pos, 4)
	}

	move1, score1 := run()
	move2, score2 := run()

	require.NotEqual(t, board.NoMove, move1)
	require.Equal(t, move1, move2, "bestmove must be reproducible across runs from the same position and depth")
	require.Equal(t, score1, score2)
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	move, score := s.Search(pos, 3)

	require.Equal(t, board.A1, move.From())
	require.Equal(t, board.A8, move.To())
	require.Greater(t, score, MateScore-10, "mate-in-one should score near +MateScore")
}

func TestSearchAvoidsLosingMaterialAtShallowDepth(t *testing.T) {
	// White to move; the queen on h5 hangs to the bishop on e8's diagonal.
	// A depth-3 search should prefer any move other than leaving the queen
	// where it can be captured for free next ply.
	pos, err := board.ParseFEN("4b3/8/8/7Q/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	move, _ := s.Search(pos, 3)

	require.Equal(t, board.H5, move.From(), "search should move the hanging queen rather than abandon it")
}

func TestSearchStopSignalHaltsQuickly(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	s.Stop()

	move, _ := s.Search(pos, 6)
	_ = move // search may still report a partial result; it must not hang or panic
}

func TestSearcherNodesCountsIncreaseWithDepth(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)

	s.Search(pos, 2)
	shallow := s.Nodes()

	tt2 := NewTranspositionTable(1)
	s2 := NewSearcher(tt2)
	s2.Search(pos, 4)
	deep := s2.Nodes()

	require.Greater(t, deep, shallow)
}

func TestGetPVReturnsPrincipalVariation(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)

	move, _ := s.Search(pos, 3)
	pv := s.GetPV()

	require.NotEmpty(t, pv)
	require.Equal(t, move, pv[0])
}
