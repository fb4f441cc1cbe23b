package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFENStartPos(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	require.Equal(t, White, pos.SideToMove)
	require.Equal(t, AllCastling, pos.CastlingRights)
	require.Equal(t, NoSquare, pos.EnPassant)
	require.Equal(t, 0, pos.HalfMoveClock)
	require.Equal(t, 1, pos.FullMoveNumber)
	require.Equal(t, 1, pos.Pieces[White][King].PopCount())
	require.Equal(t, 1, pos.Pieces[Black][King].PopCount())
	require.Equal(t, 8, pos.Pieces[White][Pawn].PopCount())
	require.Equal(t, 8, pos.Pieces[Black][Pawn].PopCount())
}

func TestFENRoundTrip(t *testing.T) {
	// Spec scenario 5: parse, re-emit, and expect byte-identical output.
	const fen = "r3k2r/qppb1pp1/2nbpn2/1B1N4/pP1PP1qP/P1P3N1/3BQP2/R3K2R b Qk b3 0 19"
	pos, err := ParseFEN(fen)
	require.NoError(t, err)
	require.Equal(t, fen, pos.ToFEN())
}

func TestFENRoundTripStartPos(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	require.Equal(t, StartFEN, pos.ToFEN())
}

func TestParseFENRejectsBadFields(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",     // bad side to move
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",     // bad castling char
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",    // bad ep square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",      // missing a rank file
		"8/8/8/8/8/8/8 w KQkq - 0 1",                                  // only 7 ranks
	}
	for _, fen := range cases {
		_, err := ParseFEN(fen)
		require.Errorf(t, err, "expected ParseFEN(%q) to fail", fen)
	}
}

func TestParseFENHashMatchesComputeHash(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	require.Equal(t, pos.ComputeHash(), pos.Hash)
}

func TestCastlingRightsString(t *testing.T) {
	require.Equal(t, "-", NoCastling.String())
	require.Equal(t, "KQkq", AllCastling.String())
	require.Equal(t, "Kq", (WhiteKingSideCastle | BlackQueenSideCastle).String())
}
