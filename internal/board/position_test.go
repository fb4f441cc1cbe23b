package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// snapshot captures every field MakeMove/UnmakeMove round trip must restore
// exactly: the piece bitboards, derived occupancy, game state, and hash.
type snapshot struct {
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
	KingSquare     [2]Square
}

func snapshotOf(p *Position) snapshot {
	return snapshot{
		Pieces:         p.Pieces,
		Occupied:       p.Occupied,
		AllOccupied:    p.AllOccupied,
		SideToMove:     p.SideToMove,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		Hash:           p.Hash,
		KingSquare:     p.KingSquare,
	}
}

// perftPositions are used across several structural-property tests below.
var perftPositions = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	for _, fen := range perftPositions {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)

		before := snapshotOf(pos)
		moves := pos.GenerateLegalMoves()

		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			require.True(t, undo.Valid)
			pos.UnmakeMove(m, undo)

			after := snapshotOf(pos)
			if diff := cmp.Diff(before, after, cmp.AllowUnexported()); diff != "" {
				t.Fatalf("make/unmake round trip for %s changed position state (-before +after):\n%s", m, diff)
			}
		}
	}
}

func TestZobristConsistencyAfterMakeMove(t *testing.T) {
	for _, fen := range perftPositions {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			require.Equal(t, pos.ComputeHash(), pos.Hash, "hash drifted from scratch-computed hash after %s", m)
			pos.UnmakeMove(m, undo)
		}
	}
}

func TestBitboardDisjointnessAfterMakeUnmake(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assertDisjoint := func(t *testing.T, p *Position) {
		t.Helper()
		var union Bitboard
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt <= King; pt++ {
				require.Zerof(t, union&p.Pieces[c][pt], "piece set for color=%v type=%v overlaps an earlier set", c, pt)
				union |= p.Pieces[c][pt]
			}
		}
		require.Equal(t, p.Pieces[White][Pawn]|p.Pieces[White][Knight]|p.Pieces[White][Bishop]|p.Pieces[White][Rook]|p.Pieces[White][Queen]|p.Pieces[White][King]|
			p.Pieces[Black][Pawn]|p.Pieces[Black][Knight]|p.Pieces[Black][Bishop]|p.Pieces[Black][Rook]|p.Pieces[Black][Queen]|p.Pieces[Black][King],
			union)
	}

	assertDisjoint(t, pos)
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		assertDisjoint(t, pos)
		pos.UnmakeMove(m, undo)
		assertDisjoint(t, pos)
	}
}

func TestMoverNeverLeftInCheckAfterMakeMove(t *testing.T) {
	for _, fen := range perftPositions {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			mover := pos.SideToMove
			undo := pos.MakeMove(m)
			require.False(t, pos.IsSquareAttacked(pos.KingSquare[mover], mover.Other()),
				"mover's king left in check after legal move %s", m)
			pos.UnmakeMove(m, undo)
		}
	}
}

func TestEnPassantTargetRankInvariant(t *testing.T) {
	pos := NewPosition()
	require.True(t, pos.TryMoveUCI("e2e4"))
	require.Equal(t, 2, pos.EnPassant.Rank(), "white double push should set ep target on rank 3 (index 2)")

	pos2, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
	require.NoError(t, err)
	require.True(t, pos2.TryMoveUCI("d4d3"))
	_ = pos2
}

func TestPositionCopyIsDeep(t *testing.T) {
	pos := NewPosition()
	clone := pos.Copy()
	clone.MakeMove(NewMove(E2, E4))

	require.NotEqual(t, pos.Hash, clone.Hash)
	require.True(t, pos.Pieces[White][Pawn].IsSet(E2), "mutating the clone must not affect the original")
}
