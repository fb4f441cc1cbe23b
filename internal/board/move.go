package board

import "fmt"

// Move encodes a chess move in 16 bits, tag-first so the flag can be read
// with a single mask regardless of the rest of the payload:
// bits 0-1:   flag (0=normal, 1=promotion, 2=en passant, 3=castling)
// bits 2-3:   promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 4-9:   from square (0-63)
// bits 10-15: to square (0-63)
type Move uint16

// Move flags
const (
	FlagNormal    uint16 = 0
	FlagPromotion uint16 = 1
	FlagEnPassant uint16 = 2
	FlagCastling  uint16 = 3
)

const (
	moveFlagBits  = 2
	moveFlagMask  = 1<<moveFlagBits - 1
	movePromoBits = 2
	movePromoMask = 1<<movePromoBits - 1
	moveFromShift = moveFlagBits + movePromoBits
	moveToShift   = moveFromShift + 6
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

func pack(from, to Square, promoIdx PieceType, flag uint16) Move {
	return Move(flag) |
		Move(promoIdx)<<moveFlagBits |
		Move(from)<<moveFromShift |
		Move(to)<<moveToShift
}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return pack(from, to, 0, FlagNormal)
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return pack(from, to, promo-Knight, FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return pack(from, to, 0, FlagEnPassant)
}

// NewCastling creates a castling move (king's movement).
func NewCastling(from, to Square) Move {
	return pack(from, to, 0, FlagCastling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m>>moveFromShift) & 0x3F
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> moveToShift)
}

// Flag returns the move flag.
func (m Move) Flag() uint16 {
	return uint16(m) & moveFlagMask
}

// Promotion returns the promotion piece type (only valid if IsPromotion() is true).
func (m Move) Promotion() PieceType {
	return PieceType((m>>moveFlagBits)&movePromoMask) + Knight
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParseMove parses a UCI format move string into the matching pseudo-legal
// move for pos. Unlike a blind geometric reconstruction, this resolves
// against GeneratePseudoLegalMoves so that "from/to" pairs that aren't a
// legal shape for the piece at from (blocked slider, non-knight jump, wrong
// pawn target) are rejected here rather than silently accepted by MakeMove.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	switch {
	case len(s) == 5:
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	case len(s) > 5:
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	if piece.Color() != pos.SideToMove {
		return NoMove, fmt.Errorf("piece at %s does not belong to side to move", from)
	}

	pseudo := pos.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if promo == NoPieceType || m.Promotion() != promo {
				continue
			}
		} else if promo != NoPieceType {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no pseudo-legal move %s for side to move", s)
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo captures everything make_move mutates that unmake_move cannot
// cheaply recompute: the captured piece, and the prior ep square, castling
// rights, halfmove clock and hash (hash is restored verbatim rather than
// recomputed, since castling/ep deltas are order-dependent).
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	Checkers       Bitboard
	Valid          bool // true if the move was actually applied
}
