package board

import (
	"fmt"
	"strings"
)

// pieceLetters lists the SAN letter for each non-pawn piece type, in
// Knight..King order (pawns never get a letter in SAN).
const pieceLetters = "NBRQK"

func letterForType(pt PieceType) byte {
	if pt == Pawn || pt > King {
		return 0
	}
	return pieceLetters[pt-Knight]
}

func typeForLetter(c byte) PieceType {
	if idx := strings.IndexByte(pieceLetters, c); idx >= 0 {
		return Knight + PieceType(idx)
	}
	return NoPieceType
}

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	if m.IsCastling() {
		if m.To() > m.From() {
			return "O-O"
		}
		return "O-O-O"
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}
	pt := piece.Type()

	var sb strings.Builder
	if letter := letterForType(pt); letter != 0 {
		sb.WriteByte(letter)
		sb.WriteString(disambiguate(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(letterForType(m.Promotion()))
	}

	after := pos.Copy()
	after.MakeMove(m)
	switch {
	case after.IsCheckmate():
		sb.WriteByte('#')
	case after.InCheck():
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguate returns the file, rank, or full-square prefix SAN needs to
// tell m's mover apart from any other like-typed piece that could also
// reach m's destination.
func disambiguate(pos *Position, m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	sameType := pos.Pieces[pos.SideToMove][pt]

	var rivals []Square
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if sameType.IsSet(other.From()) {
			rivals = append(rivals, other.From())
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	fileClashes, rankClashes := false, false
	for _, sq := range rivals {
		fileClashes = fileClashes || sq.File() == from.File()
		rankClashes = rankClashes || sq.Rank() == from.Rank()
	}

	switch {
	case !fileClashes:
		return string('a' + byte(from.File()))
	case !rankClashes:
		return string('1' + byte(from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN parses a SAN string and returns the corresponding move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)

	if castling, ok := parseCastlingSAN(s, pos); ok {
		legal := pos.GenerateLegalMoves()
		if !legal.Contains(castling) {
			return NoMove, nil
		}
		return castling, nil
	}

	s = strings.TrimRight(s, "+#")

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		promo = typeForLetter(s[idx+1])
		s = s[:idx]
	}

	isCapture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		if found := typeForLetter(s[0]); found != NoPieceType {
			pt = found
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, nil
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	disambig := s[:len(s)-2]

	wantFile, wantRank := -1, -1
	for _, c := range disambig {
		switch {
		case c >= 'a' && c <= 'h':
			wantFile = int(c - 'a')
		case c >= '1' && c <= '8':
			wantRank = int(c - '1')
		}
	}

	found := NoMove
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.To() != dest {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if wantFile >= 0 && from.File() != wantFile {
			continue
		}
		if wantRank >= 0 && from.Rank() != wantRank {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promo != NoPieceType && (!m.IsPromotion() || m.Promotion() != promo) {
			continue
		}
		if found != NoMove {
			return NoMove, fmt.Errorf("ambiguous SAN move: %s", s)
		}
		found = m
	}

	return found, nil
}

func parseCastlingSAN(s string, pos *Position) (Move, bool) {
	switch s {
	case "O-O", "0-0":
		if pos.SideToMove == White {
			return NewCastling(E1, G1), true
		}
		return NewCastling(E8, G8), true
	case "O-O-O", "0-0-0":
		if pos.SideToMove == White {
			return NewCastling(E1, C1), true
		}
		return NewCastling(E8, C8), true
	default:
		return NoMove, false
	}
}

// MovesToSAN converts a slice of moves to SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()
	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}
	return result
}
