package board

// TryMoveUCI parses s as "<from><to>[promo]" and, if it resolves to a legal
// move, applies it and returns true. On any parse failure or illegal move,
// the position is left unchanged and false is returned.
func (p *Position) TryMoveUCI(s string) bool {
	m, err := ParseMove(s, p)
	if err != nil {
		return false
	}
	if !p.IsLegal(m) {
		return false
	}
	p.MakeMove(m)
	return true
}

// TryMoveAlgebraic parses s as Standard Algebraic Notation and, if it
// resolves unambiguously to a legal move, applies it and returns true.
// Ambiguous or unparseable input leaves the position unchanged.
func (p *Position) TryMoveAlgebraic(s string) bool {
	m, err := ParseSAN(s, p)
	if err != nil || m == NoMove {
		return false
	}
	if !p.IsLegal(m) {
		return false
	}
	p.MakeMove(m)
	return true
}
