package board

import "strings"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt > King {
		return ' '
	}
	return "pnbrqk"[pt]
}

// PieceValue returns the material value of the piece type in centipawns.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// pieceGlyphs lists the FEN letter for every (color, type) pair; white on
// row 0, black on row 1, in Pawn..King order.
var pieceGlyphs = [2]string{"PNBRQK", "pnbrqk"}

// Piece packs a PieceType into the low three bits and a Color into bit 3,
// mirroring how the reference engine's Move record tags a captured or
// promoted piece with a narrow bitfield rather than a flat enum range.
type Piece uint8

const (
	pieceTypeBits  = 3
	pieceTypeMask  = 1<<pieceTypeBits - 1
	pieceColorBit  = pieceTypeBits
	NoPiece  Piece = 0xF
)

// NewPiece packs a type and color into a Piece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)<<pieceColorBit | Piece(pt)
}

var (
	WhitePawn   = NewPiece(Pawn, White)
	WhiteKnight = NewPiece(Knight, White)
	WhiteBishop = NewPiece(Bishop, White)
	WhiteRook   = NewPiece(Rook, White)
	WhiteQueen  = NewPiece(Queen, White)
	WhiteKing   = NewPiece(King, White)
	BlackPawn   = NewPiece(Pawn, Black)
	BlackKnight = NewPiece(Knight, Black)
	BlackBishop = NewPiece(Bishop, Black)
	BlackRook   = NewPiece(Rook, Black)
	BlackQueen  = NewPiece(Queen, Black)
	BlackKing   = NewPiece(King, Black)
)

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p == NoPiece {
		return NoPieceType
	}
	return PieceType(p & pieceTypeMask)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	return Color(p >> pieceColorBit)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	return string(pieceGlyphs[p.Color()][p.Type()])
}

// PieceFromChar converts a FEN character to a Piece, locating the letter
// in the glyph tables rather than switching over every case by hand.
func PieceFromChar(c byte) Piece {
	if idx := strings.IndexByte(pieceGlyphs[White], c); idx >= 0 {
		return NewPiece(PieceType(idx), White)
	}
	if idx := strings.IndexByte(pieceGlyphs[Black], c); idx >= 0 {
		return NewPiece(PieceType(idx), Black)
	}
	return NoPiece
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
