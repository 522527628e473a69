package engine

// Move describes one reversible board transition. It is constructed from the
// board it was generated against and snapshots the en-passant target and
// castle rights of that moment, so RevertMove can restore them without
// recomputation. Moves are plain comparable values; they are never mutated
// after construction.
type Move struct {
	From Square
	To   Square
	Kind PieceKind

	// Capture is the exact piece removed by this move. Its square normally
	// equals To, but differs for en-passant captures.
	Capture    PieceOnBoard
	HasCapture bool

	EnPassantBefore Square
	EnPassantAfter  Square

	RightsBefore BoardCastleRights

	Castle    Castle
	Promotion PieceKind
}

// NewMove creates a plain relocation of kind from from to to.
func NewMove(b *Board, kind PieceKind, from, to Square) Move {
	return Move{
		From:            from,
		To:              to,
		Kind:            kind,
		EnPassantBefore: b.EnPassant,
		EnPassantAfter:  NoSquare,
		RightsBefore:    b.Rights,
	}
}

// NewCapture creates a move that removes capture from the board.
func NewCapture(b *Board, kind PieceKind, from, to Square, capture PieceOnBoard) Move {
	m := NewMove(b, kind, from, to)
	m.Capture = capture
	m.HasCapture = true
	return m
}

// NewDoublePush creates a pawn double step that leaves enPassant behind as
// the square an opposing pawn may capture into on the next ply.
func NewDoublePush(b *Board, from, to, enPassant Square) Move {
	m := NewMove(b, Pawn, from, to)
	m.EnPassantAfter = enPassant
	return m
}

// NewPromotion creates a pawn move that promotes to promo on arrival.
func NewPromotion(b *Board, from, to Square, promo PieceKind) Move {
	m := NewMove(b, Pawn, from, to)
	m.Promotion = promo
	return m
}

// NewPromotionCapture creates a capturing pawn move that promotes to promo.
func NewPromotionCapture(b *Board, from, to Square, capture PieceOnBoard, promo PieceKind) Move {
	m := NewCapture(b, Pawn, from, to, capture)
	m.Promotion = promo
	return m
}

// NewCastleMove creates the two-square king jump for the given side. The rook
// relocation is synthesized at apply time, not carried here.
func NewCastleMove(b *Board, color Color, side Castle) Move {
	file := 2
	if side == KingSide {
		file = 6
	}
	rank := color.BackRank()

	m := NewMove(b, King, Sq(4, rank), Sq(file, rank))
	m.Castle = side
	return m
}

// rookCastleMove is the rook relocation nested inside a castling move.
func rookCastleMove(b *Board, side Castle, rank int) Move {
	if rank != 0 && rank != 7 {
		panic("rook castle move outside a back rank")
	}
	if side == KingSide {
		return NewMove(b, Rook, Sq(7, rank), Sq(5, rank))
	}
	return NewMove(b, Rook, Sq(0, rank), Sq(3, rank))
}

// RightsAfter derives the castle rights the board holds once side has played
// this move: a king move strips both of side's rights, a rook move off a home
// corner strips that corner's right, and capturing on the opponent's rook
// home corner strips the opponent's corresponding right. Computed from the
// move's immutable fields so reversion can restore the exact prior rights.
func (m Move) RightsAfter(side Color) BoardCastleRights {
	rights := m.RightsBefore
	other := side.Other()

	switch m.Kind {
	case King:
		rights.SetRights(side, NoRights())
	case Rook:
		if m.From == Sq(7, side.BackRank()) {
			rights.rightsFor(side).KingSide = false
		}
		if m.From == Sq(0, side.BackRank()) {
			rights.rightsFor(side).QueenSide = false
		}
	}

	if m.HasCapture {
		if m.Capture.Square == Sq(7, other.BackRank()) {
			rights.rightsFor(other).KingSide = false
		}
		if m.Capture.Square == Sq(0, other.BackRank()) {
			rights.rightsFor(other).QueenSide = false
		}
	}

	return rights
}

// LongAlgebraic renders the move as "<from>-<to>", e.g. "a1-a3".
func (m Move) LongAlgebraic() string {
	return m.From.Algebraic() + "-" + m.To.Algebraic()
}
