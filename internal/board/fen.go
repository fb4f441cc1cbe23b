package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castlingLetters pairs each FEN castling letter with the right it grants.
var castlingLetters = []struct {
	letter byte
	right  CastlingRights
}{
	{'K', WhiteKingSideCastle},
	{'Q', WhiteQueenSideCastle},
	{'k', BlackKingSideCastle},
	{'q', BlackQueenSideCastle},
}

// ParseFEN parses a FEN string and returns a Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(fields))
	}

	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", fields[1])
	}

	if err := parseCastlingRights(pos, fields[2]); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", fields[3])
		}
		pos.EnPassant = sq
	}

	if len(fields) > 4 {
		hmc, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", fields[4])
		}
		pos.HalfMoveClock = hmc
	}

	if len(fields) > 5 {
		fullMove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", fields[5])
		}
		pos.FullMoveNumber = fullMove
	}

	pos.updateOccupied()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckers()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string,
// walking ranks from 8 down to 1 as the field lists them.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := PieceFromChar(byte(ch))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", ch)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}
	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, field string) error {
	if field == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	for _, ch := range field {
		matched := false
		for _, entry := range castlingLetters {
			if byte(ch) == entry.letter {
				pos.CastlingRights |= entry.right
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("invalid castling character: %c", ch)
		}
	}
	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch,
// by XORing the contribution of every piece present, side-to-move if
// black, the castling-rights slot, and the en-passant file slot if set.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				hash ^= zobristTable.piece[c][pt][bb.PopLSB()]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristTable.sideToMove
	}

	hash ^= zobristTable.castling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		hash ^= zobristTable.enPassant[p.EnPassant.File()]
	}

	return hash
}
