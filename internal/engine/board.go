package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Board is the mutable position: the piece list, the side to move, the
// en-passant target and both sides' castle rights.
//
// Pieces live in a dense list so move generation can walk them in a stable
// order; a 64-entry square index gives O(1) lookup, insert and removal.
// Removing a piece swaps the last list entry into the freed slot, so the list
// order is insertion order disturbed only by captures. ApplyMove and
// RevertMove form an exact inverse pair; callers exploring a tree must revert
// in reverse order of application.
type Board struct {
	Side      Color
	EnPassant Square
	Rights    BoardCastleRights

	pieces []PieceOnBoard
	slots  [64]int16
}

// NewBoard creates an empty board: White to move, no en-passant target, no
// castle rights.
func NewBoard() *Board {
	b := &Board{
		Side:      White,
		EnPassant: NoSquare,
		Rights:    NoBoardRights(),
		pieces:    make([]PieceOnBoard, 0, 32),
	}
	for i := range b.slots {
		b.slots[i] = -1
	}
	return b
}

// NewPopulatedBoard creates the standard 32-piece starting position with all
// castle rights granted.
func NewPopulatedBoard() *Board {
	b := NewBoard()
	for file := 0; file < 8; file++ {
		b.AddPiece(Pawn.Colored(White), Sq(file, 1))
		b.AddPiece(Pawn.Colored(Black), Sq(file, 6))
	}
	b.AddPiece(Rook.Colored(White), Sq(0, 0))
	b.AddPiece(Rook.Colored(White), Sq(7, 0))
	b.AddPiece(Rook.Colored(Black), Sq(0, 7))
	b.AddPiece(Rook.Colored(Black), Sq(7, 7))
	b.AddPiece(Knight.Colored(White), Sq(1, 0))
	b.AddPiece(Knight.Colored(White), Sq(6, 0))
	b.AddPiece(Knight.Colored(Black), Sq(1, 7))
	b.AddPiece(Knight.Colored(Black), Sq(6, 7))
	b.AddPiece(Bishop.Colored(White), Sq(2, 0))
	b.AddPiece(Bishop.Colored(White), Sq(5, 0))
	b.AddPiece(Bishop.Colored(Black), Sq(2, 7))
	b.AddPiece(Bishop.Colored(Black), Sq(5, 7))
	b.AddPiece(Queen.Colored(White), Sq(3, 0))
	b.AddPiece(King.Colored(White), Sq(4, 0))
	b.AddPiece(Queen.Colored(Black), Sq(3, 7))
	b.AddPiece(King.Colored(Black), Sq(4, 7))

	b.Rights = AllBoardRights()
	return b
}

// AddPiece places a piece on an empty on-board square.
func (b *Board) AddPiece(p Piece, sq Square) {
	if !sq.IsOnBoard() {
		panic(fmt.Sprintf("adding piece on off-board square %v", sq))
	}
	if b.slots[sq.index()] >= 0 {
		panic(fmt.Sprintf("adding piece on occupied square %v", sq))
	}
	b.pieces = append(b.pieces, PieceOnBoard{Piece: p, Square: sq})
	b.slots[sq.index()] = int16(len(b.pieces) - 1)
}

// AddPieces places every listed piece; a convenience for building positions.
func (b *Board) AddPieces(placements ...PieceOnBoard) {
	for _, p := range placements {
		b.AddPiece(p.Piece, p.Square)
	}
}

func (b *Board) removeAt(sq Square) {
	i := b.slots[sq.index()]
	if i < 0 {
		panic(fmt.Sprintf("removing piece from empty square %v", sq))
	}
	last := len(b.pieces) - 1
	if int(i) != last {
		b.pieces[i] = b.pieces[last]
		b.slots[b.pieces[i].Square.index()] = i
	}
	b.pieces = b.pieces[:last]
	b.slots[sq.index()] = -1
}

// PieceAt returns the piece on sq, if any. Off-board squares are empty.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.IsOnBoard() {
		return Piece{}, false
	}
	i := b.slots[sq.index()]
	if i < 0 {
		return Piece{}, false
	}
	return b.pieces[i].Piece, true
}

func (b *Board) HasPieceAt(sq Square) bool {
	return sq.IsOnBoard() && b.slots[sq.index()] >= 0
}

// Pieces exposes the piece list for iteration. Callers must not mutate it.
func (b *Board) Pieces() []PieceOnBoard {
	return b.pieces
}

// KingSquare locates color's king. Test positions may lack one.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for _, p := range b.pieces {
		if p.Piece.Kind == King && p.Piece.Color == color {
			return p.Square, true
		}
	}
	return NoSquare, false
}

// ApplyMove plays m on the board. The move must have been generated against
// the board's current state; applying a stale move, or a move whose capture
// no longer matches the board, is a caller sequencing bug and panics.
func (b *Board) ApplyMove(m Move) {
	if m.EnPassantBefore != b.EnPassant {
		panic(fmt.Sprintf("stale move %v -> %v: move en passant %v, board en passant %v",
			m.From, m.To, m.EnPassantBefore, b.EnPassant))
	}

	if m.HasCapture {
		i := b.slots[m.Capture.Square.index()]
		if i < 0 || b.pieces[i] != m.Capture {
			panic(fmt.Sprintf("capture mismatch at %v applying %v -> %v", m.Capture.Square, m.From, m.To))
		}
		b.removeAt(m.Capture.Square)
	} else if b.HasPieceAt(m.To) {
		panic(fmt.Sprintf("destination %v occupied applying non-capture %v -> %v", m.To, m.From, m.To))
	}

	b.applyMoveImpl(m)
	b.EnPassant = m.EnPassantAfter
	b.Rights = m.RightsAfter(b.Side)
	b.Side = b.Side.Other()
}

func (b *Board) applyMoveImpl(m Move) {
	piece, ok := b.PieceAt(m.From)
	if !ok || piece.Kind != m.Kind {
		panic(fmt.Sprintf("no %v to move on %v", m.Kind, m.From))
	}

	// Castling relocates the rook through a nested move so the pair stays one
	// undoable unit.
	if m.Castle != NoCastle {
		b.applyMoveImpl(rookCastleMove(b, m.Castle, m.From.Rank))
	}

	i := b.slots[m.From.index()]
	if m.Promotion != NoKind {
		b.pieces[i].Piece.Kind = m.Promotion
	}
	b.pieces[i].Square = m.To
	b.slots[m.From.index()] = -1
	b.slots[m.To.index()] = i
}

// RevertMove undoes m, the move most recently applied. The board returns to a
// state semantically equal to the pre-apply state; only piece list ordering
// may differ.
func (b *Board) RevertMove(m Move) {
	b.revertMoveImpl(m)

	if m.HasCapture {
		if b.HasPieceAt(m.Capture.Square) {
			panic(fmt.Sprintf("capture square %v occupied reverting %v -> %v", m.Capture.Square, m.From, m.To))
		}
		b.AddPiece(m.Capture.Piece, m.Capture.Square)
	}

	b.Side = b.Side.Other()
	b.EnPassant = m.EnPassantBefore
	b.Rights = m.RightsBefore
}

func (b *Board) revertMoveImpl(m Move) {
	piece, ok := b.PieceAt(m.To)
	want := m.Kind
	if m.Promotion != NoKind {
		want = m.Promotion
	}
	if !ok || piece.Kind != want {
		panic(fmt.Sprintf("no %v to revert on %v", want, m.To))
	}

	if m.Castle != NoCastle {
		b.revertMoveImpl(rookCastleMove(b, m.Castle, m.From.Rank))
	}

	i := b.slots[m.To.index()]
	if m.Promotion != NoKind {
		b.pieces[i].Piece.Kind = Pawn
	}
	b.pieces[i].Square = m.From
	b.slots[m.To.index()] = -1
	b.slots[m.From.index()] = i
}

// IsGameOver reports whether the side to move has no pseudo-legal moves. It
// does not distinguish checkmate from stalemate.
func (b *Board) IsGameOver() bool {
	return len(GenerateMoves(b)) == 0
}

// Clone returns an independent deep copy. Parallel callers must search on
// clones; the apply/revert protocol is not safe on a shared board.
func (b *Board) Clone() *Board {
	c := &Board{
		Side:      b.Side,
		EnPassant: b.EnPassant,
		Rights:    b.Rights,
		pieces:    make([]PieceOnBoard, len(b.pieces)),
		slots:     b.slots,
	}
	copy(c.pieces, b.pieces)
	return c
}

// SemanticEq compares two boards ignoring piece list ordering.
func (b *Board) SemanticEq(o *Board) bool {
	if b.Side != o.Side || b.EnPassant != o.EnPassant || b.Rights != o.Rights {
		return false
	}
	if len(b.pieces) != len(o.pieces) {
		return false
	}

	bs := sortedPieces(b.pieces)
	os := sortedPieces(o.pieces)
	for i := range bs {
		if bs[i] != os[i] {
			return false
		}
	}
	return true
}

func sortedPieces(pieces []PieceOnBoard) []PieceOnBoard {
	s := make([]PieceOnBoard, len(pieces))
	copy(s, pieces)
	sort.Slice(s, func(i, j int) bool { return s[i].less(s[j]) })
	return s
}

// String renders a rank-by-rank diagram, white pieces uppercase.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for file := 0; file < 8; file++ {
		fmt.Fprintf(&sb, "%d ", file)
	}
	sb.WriteByte('\n')

	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 0; file < 8; file++ {
			token := byte('.')
			if piece, ok := b.PieceAt(Sq(file, rank)); ok {
				token = piece.Kind.Token()
				if piece.Color == White {
					token = token - 'a' + 'A'
				}
			}
			sb.WriteByte(token)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
