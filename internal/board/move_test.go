package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveEncodingRoundTrip(t *testing.T) {
	m := NewMove(E2, E4)
	require.Equal(t, E2, m.From())
	require.Equal(t, E4, m.To())
	require.False(t, m.IsPromotion())
	require.False(t, m.IsCastling())
	require.False(t, m.IsEnPassant())
}

func TestMovePromotionEncoding(t *testing.T) {
	for _, promo := range []PieceType{Knight, Bishop, Rook, Queen} {
		m := NewPromotion(A7, A8, promo)
		require.True(t, m.IsPromotion())
		require.Equal(t, promo, m.Promotion())
		require.Equal(t, A7, m.From())
		require.Equal(t, A8, m.To())
	}
}

func TestMoveStringUCIFormat(t *testing.T) {
	require.Equal(t, "e2e4", NewMove(E2, E4).String())
	require.Equal(t, "a7a8q", NewPromotion(A7, A8, Queen).String())
	require.Equal(t, "0000", NoMove.String())
}

func TestParseMoveResolvesPseudoLegalShape(t *testing.T) {
	pos := NewPosition()
	m, err := ParseMove("e2e4", pos)
	require.NoError(t, err)
	require.Equal(t, E2, m.From())
	require.Equal(t, E4, m.To())
}

func TestParseMoveRejectsGeometricallyIllegalShape(t *testing.T) {
	pos := NewPosition()
	// c1-h6 is diagonally aligned but blocked by the d2 pawn in the start
	// position; this from/to pair has no matching pseudo-legal move, so
	// ParseMove must reject it instead of blindly trusting the geometry and
	// letting MakeMove silently teleport the piece through the blocker.
	_, err := ParseMove("c1h6", pos)
	require.Error(t, err)
}

func TestParseMoveRejectsEmptySquare(t *testing.T) {
	pos := NewPosition()
	_, err := ParseMove("e4e5", pos)
	require.Error(t, err)
}

func TestParseMoveRejectsWrongSideToMove(t *testing.T) {
	pos := NewPosition() // white to move
	_, err := ParseMove("e7e5", pos)
	require.Error(t, err)
}

func TestParseMoveDetectsCastlingAndEnPassant(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/4Pp2/8/8/R3K2R b KQkq e3 0 1")
	require.NoError(t, err)

	castle, err := ParseMove("e8c8", pos)
	require.NoError(t, err)
	require.True(t, castle.IsCastling())

	ep, err := ParseMove("f4e3", pos)
	require.NoError(t, err)
	require.True(t, ep.IsEnPassant())
}

func TestMoveListBasics(t *testing.T) {
	ml := NewMoveList()
	require.Equal(t, 0, ml.Len())

	ml.Add(NewMove(A1, A2))
	ml.Add(NewMove(B1, B2))
	require.Equal(t, 2, ml.Len())
	require.True(t, ml.Contains(NewMove(A1, A2)))
	require.False(t, ml.Contains(NewMove(C1, C2)))

	ml.Clear()
	require.Equal(t, 0, ml.Len())
}
