package board

// attackFn computes the attack set of a piece on sq given the board's
// current occupancy. Knight and king attacks ignore occupied; sliders use
// it to stop rays at the first blocker.
type attackFn func(sq Square, occupied Bitboard) Bitboard

func knightAttackFn(sq Square, _ Bitboard) Bitboard { return KnightAttacks(sq) }
func kingAttackFn(sq Square, _ Bitboard) Bitboard   { return KingAttacks(sq) }

// jumpersAndSliders lists every piece type whose moves are "attack set
// minus own pieces", the way the reference generator dispatches a single
// generate_piece_moves routine across piece kinds rather than writing one
// generation loop per type. Pawns and the king's castling moves have
// their own shape and are generated separately below.
var jumpersAndSliders = []struct {
	pt      PieceType
	attacks attackFn
}{
	{Knight, knightAttackFn},
	{Bishop, BishopAttacks},
	{Rook, RookAttacks},
	{Queen, QueenAttacks},
}

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates all legal capture moves plus pawn
// push-promotions.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	notOwn := ^p.Occupied[us]

	p.generatePawnMoves(ml, us, p.Occupied[us.Other()], occupied)

	for _, k := range jumpersAndSliders {
		bb := p.Pieces[us][k.pt]
		for bb != 0 {
			from := bb.PopLSB()
			targets := k.attacks(from, occupied) & notOwn
			for targets != 0 {
				ml.Add(NewMove(from, targets.PopLSB()))
			}
		}
	}

	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
}

// generateCaptures generates capture moves (plus pawn push-promotions,
// which quiescence search needs even though they don't capture anything).
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	enemies := p.Occupied[us.Other()]
	occupied := p.AllOccupied

	p.generatePawnCaptures(ml, us, enemies)
	p.generatePawnPushPromotions(ml, us, occupied)
	p.generateEnPassant(ml, us)

	for _, k := range jumpersAndSliders {
		bb := p.Pieces[us][k.pt]
		for bb != 0 {
			from := bb.PopLSB()
			targets := k.attacks(from, occupied) & enemies
			for targets != 0 {
				ml.Add(NewMove(from, targets.PopLSB()))
			}
		}
	}

	from := p.KingSquare[us]
	targets := KingAttacks(from) & enemies
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// pawnShape bundles the direction-dependent values pawn generation needs
// for one color: which way pushes and diagonal captures travel, and which
// rank promotes.
type pawnShape struct {
	push             func(Bitboard) Bitboard
	captureEast      func(Bitboard) Bitboard
	captureWest      func(Bitboard) Bitboard
	epRankOfEnemy    func(Bitboard) Bitboard // reverse-direction shift used to find ep attackers
	promoRank        Bitboard
	doublePushSrc    Bitboard // rank a single push must land on to be eligible for a second push
	pushDelta        int
	captureEastDelta int
	captureWestDelta int
}

func pawnShapeFor(us Color) pawnShape {
	if us == White {
		return pawnShape{
			push: Bitboard.North, captureEast: Bitboard.NorthEast, captureWest: Bitboard.NorthWest,
			epRankOfEnemy: func(b Bitboard) Bitboard { return b.SouthWest() | b.SouthEast() },
			promoRank:     Rank8, doublePushSrc: Rank3,
			pushDelta: 8, captureEastDelta: 9, captureWestDelta: 7,
		}
	}
	return pawnShape{
		push: Bitboard.South, captureEast: Bitboard.SouthWest, captureWest: Bitboard.SouthEast,
		epRankOfEnemy: func(b Bitboard) Bitboard { return b.NorthWest() | b.NorthEast() },
		promoRank:     Rank1, doublePushSrc: Rank6,
		pushDelta: -8, captureEastDelta: -9, captureWestDelta: -7,
	}
}

// generatePawnMoves covers every quiet and capturing pawn move: single and
// double advances, diagonal captures, promotions, and en passant. Split
// into the smaller helpers below, one per move family, the way a pawn
// generator that exposes pawn_short_advances/pawn_long_advances/
// pawn_potential_attacks as separate entry points would.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	shape := pawnShapeFor(us)
	empty := ^occupied

	singlePush := shape.push(p.Pieces[us][Pawn]) & empty
	doublePush := shape.push(singlePush&shape.doublePushSrc) & empty

	addShifted(ml, singlePush & ^shape.promoRank, shape.pushDelta)
	addShifted(ml, doublePush, 2*shape.pushDelta)

	attackE := shape.captureEast(p.Pieces[us][Pawn]) & enemies
	attackW := shape.captureWest(p.Pieces[us][Pawn]) & enemies
	addShifted(ml, attackE & ^shape.promoRank, shape.captureEastDelta)
	addShifted(ml, attackW & ^shape.promoRank, shape.captureWestDelta)

	addPromotionsShifted(ml, singlePush&shape.promoRank, shape.pushDelta)
	addPromotionsShifted(ml, attackE&shape.promoRank, shape.captureEastDelta)
	addPromotionsShifted(ml, attackW&shape.promoRank, shape.captureWestDelta)

	p.generateEnPassant(ml, us)
}

func (p *Position) generatePawnCaptures(ml *MoveList, us Color, enemies Bitboard) {
	shape := pawnShapeFor(us)
	pawns := p.Pieces[us][Pawn]

	attackE := shape.captureEast(pawns) & enemies
	attackW := shape.captureWest(pawns) & enemies
	addShifted(ml, attackE & ^shape.promoRank, shape.captureEastDelta)
	addShifted(ml, attackW & ^shape.promoRank, shape.captureWestDelta)
	addPromotionsShifted(ml, attackE&shape.promoRank, shape.captureEastDelta)
	addPromotionsShifted(ml, attackW&shape.promoRank, shape.captureWestDelta)
}

func (p *Position) generatePawnPushPromotions(ml *MoveList, us Color, occupied Bitboard) {
	shape := pawnShapeFor(us)
	push := shape.push(p.Pieces[us][Pawn]) & ^occupied & shape.promoRank
	addPromotionsShifted(ml, push, shape.pushDelta)
}

func (p *Position) generateEnPassant(ml *MoveList, us Color) {
	if p.EnPassant == NoSquare {
		return
	}
	shape := pawnShapeFor(us)
	epBB := SquareBB(p.EnPassant)
	attackers := shape.epRankOfEnemy(epBB) & p.Pieces[us][Pawn]
	for attackers != 0 {
		ml.Add(NewEnPassant(attackers.PopLSB(), p.EnPassant))
	}
}

// addShifted adds a quiet or capturing move for every bit in targets,
// reconstructing the origin square by undoing the shift that produced it.
func addShifted(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(NewMove(Square(int(to)-delta), to))
	}
}

func addPromotionsShifted(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := targets.PopLSB()
		addPromotions(ml, Square(int(to)-delta), to)
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateKingMoves generates king moves (non-castling).
func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	from := p.KingSquare[us]
	targets := KingAttacks(from) & ^p.Occupied[us]
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// castlingPath describes one castling option: the right that must be held,
// the squares that must be vacant, and the squares (including the king's
// own square) that must not be under attack for the king to pass safely.
type castlingPath struct {
	right      CastlingRights
	kingFrom   Square
	kingTo     Square
	mustBeOpen Bitboard
	mustBeSafe [3]Square
}

var castlingPaths = [2][2]castlingPath{
	White: {
		{WhiteKingSideCastle, E1, G1, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}},
		{WhiteQueenSideCastle, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingSideCastle, E8, G8, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}},
		{BlackQueenSideCastle, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}},
	},
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	for _, path := range castlingPaths[us] {
		if p.CastlingRights&path.right == 0 {
			continue
		}
		if p.AllOccupied&path.mustBeOpen != 0 {
			continue
		}
		safe := true
		for _, sq := range path.mustBeSafe {
			if p.IsSquareAttacked(sq, them) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(NewCastling(path.kingFrom, path.kingTo))
		}
	}
}

// filterLegalMoves filters out illegal moves (those that leave king in check).
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal returns true if the move is legal: it is made on a cloned
// position, and rejected if that leaves the mover's king attacked by the
// opposite side. Pins are not tracked separately; this clone-and-check
// filter is the sole legality test, pseudo-legal generation included.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	clone := p.Copy()
	undo := clone.MakeMove(m)
	if !undo.Valid {
		return false
	}
	return !clone.IsSquareAttacked(clone.KingSquare[us], us.Other())
}

// rookCastleSquares returns the rook's origin and destination for a
// castling move already known to be kingside or queenside by from/to.
func rookCastleSquares(from, to Square) (rookFrom, rookTo Square) {
	rank := from.Rank()
	if to > from {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// castlingLoss reports which castling rights are forfeited because a piece
// moved from or to one of the four castling-relevant corner/king squares.
func castlingLoss(from, to Square, movedType PieceType, us Color) CastlingRights {
	var lost CastlingRights
	if movedType == King {
		if us == White {
			lost |= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			lost |= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	touches := func(sq Square) bool { return from == sq || to == sq }
	if touches(A1) {
		lost |= WhiteQueenSideCastle
	}
	if touches(H1) {
		lost |= WhiteKingSideCastle
	}
	if touches(A8) {
		lost |= BlackQueenSideCastle
	}
	if touches(H8) {
		lost |= BlackKingSideCastle
	}
	return lost
}

// MakeMove applies a move to the position and returns undo information.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		Checkers:       p.Checkers,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return undo
	}
	undo.Valid = true
	pt := piece.Type()

	p.Hash ^= zobristTable.sideToMove
	p.Hash ^= zobristTable.castling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristTable.enPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := to - Square(8)
		if us == Black {
			capturedSq = to + Square(8)
		}
		undo.CapturedPiece = p.removePiece(capturedSq)
		p.Hash ^= zobristTable.piece[them][Pawn][capturedSq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.removePiece(to)
		p.Hash ^= zobristTable.piece[them][captured.Type()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristTable.piece[us][pt][from]
	p.Hash ^= zobristTable.piece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristTable.piece[us][Pawn][to]
		p.Hash ^= zobristTable.piece[us][promoPt][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(from, to)
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristTable.piece[us][Rook][rookFrom]
		p.Hash ^= zobristTable.piece[us][Rook][rookTo]
	}

	p.CastlingRights &^= castlingLoss(from, to, pt, us)
	p.Hash ^= zobristTable.castling[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristTable.enPassant[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	return undo
}

// UnmakeMove undoes a move using the stored undo information.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.movePiece(to, from)

	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(from, to)
		p.movePiece(rookTo, rookFrom)
	}

	if undo.CapturedPiece != NoPiece {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = to - Square(8)
			if us == Black {
				capturedSq = to + Square(8)
			}
		}
		p.setPiece(undo.CapturedPiece, capturedSq)
	}
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw returns true if the position is a draw (stalemate, 50-move, insufficient material).
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wMinors := p.Pieces[White][Knight].PopCount() + p.Pieces[White][Bishop].PopCount()
	bMinors := p.Pieces[Black][Knight].PopCount() + p.Pieces[Black][Bishop].PopCount()

	if wMinors+bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}
