package engine

import "fmt"

// Square is a signed board coordinate. Off-board values are legal and show up
// transiently during ray stepping; check IsOnBoard before using one.
type Square struct {
	File int
	Rank int
}

// NoSquare marks "no square" in optional fields (en-passant targets).
var NoSquare = Square{-1, -1}

func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func (s Square) Delta(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func (s Square) IsOnBoard() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// index maps an on-board square to 0..63.
func (s Square) index() int {
	return s.Rank*8 + s.File
}

// less orders squares file-major, used when sorting piece lists.
func (s Square) less(o Square) bool {
	if s.File != o.File {
		return s.File < o.File
	}
	return s.Rank < o.Rank
}

// Algebraic renders the square as a file letter followed by the raw rank
// digit, e.g. (0,1) -> "a1".
func (s Square) Algebraic() string {
	if !s.IsOnBoard() {
		panic(fmt.Sprintf("algebraic notation for off-board square (%d, %d)", s.File, s.Rank))
	}
	return fmt.Sprintf("%c%d", 'a'+byte(s.File), s.Rank)
}

func (s Square) String() string {
	return fmt.Sprintf("(%d, %d)", s.File, s.Rank)
}

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the direction a pawn of this color advances in.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank is the rank this color's pawns start on.
func (c Color) HomeRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) PromotionRank() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) BackRank() int {
	if c == White {
		return 0
	}
	return 7
}

// Sign is the color's contribution to the White-positive evaluation.
func (c Color) Sign() float64 {
	if c == White {
		return 1.0
	}
	return -1.0
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castle tags which side of the board a castling move belongs to.
type Castle int8

const (
	NoCastle Castle = iota
	KingSide
	QueenSide
)

type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	// Dummy occupies a square without generating moves. It only appears in
	// test positions; the generator must still tolerate it.
	Dummy
)

// Value is the material value used by the static evaluation.
func (k PieceKind) Value() float64 {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 200
	default:
		return 0
	}
}

// Token is the lowercase piece letter used in board diagrams.
func (k PieceKind) Token() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	case Dummy:
		return 'd'
	}
	return '?'
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Dummy:
		return "dummy"
	}
	return "none"
}

func (k PieceKind) Colored(c Color) Piece {
	return Piece{Kind: k, Color: c}
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

// Value is the signed material value: white positive, black negative.
func (p Piece) Value() float64 {
	return p.Kind.Value() * p.Color.Sign()
}

// At places the piece on a square, forming a PieceOnBoard.
func (p Piece) At(file, rank int) PieceOnBoard {
	return PieceOnBoard{Piece: p, Square: Sq(file, rank)}
}

// PieceOnBoard pairs a piece with the square it stands on.
type PieceOnBoard struct {
	Piece  Piece
	Square Square
}

// less orders piece placements deterministically for SemanticEq.
func (p PieceOnBoard) less(o PieceOnBoard) bool {
	if p.Piece.Kind != o.Piece.Kind {
		return p.Piece.Kind < o.Piece.Kind
	}
	if p.Piece.Color != o.Piece.Color {
		return p.Piece.Color < o.Piece.Color
	}
	return p.Square.less(o.Square)
}

// ColorCastleRights are one side's remaining castling options.
type ColorCastleRights struct {
	KingSide  bool
	QueenSide bool
}

func AllRights() ColorCastleRights {
	return ColorCastleRights{KingSide: true, QueenSide: true}
}

func NoRights() ColorCastleRights {
	return ColorCastleRights{}
}

func (r ColorCastleRights) Test(side Castle) bool {
	if side == KingSide {
		return r.KingSide
	}
	return r.QueenSide
}

// BoardCastleRights are the castling rights of both sides.
type BoardCastleRights struct {
	White ColorCastleRights
	Black ColorCastleRights
}

func AllBoardRights() BoardCastleRights {
	return BoardCastleRights{White: AllRights(), Black: AllRights()}
}

func NoBoardRights() BoardCastleRights {
	return BoardCastleRights{}
}

func (r BoardCastleRights) Rights(c Color) ColorCastleRights {
	if c == White {
		return r.White
	}
	return r.Black
}

func (r *BoardCastleRights) rightsFor(c Color) *ColorCastleRights {
	if c == White {
		return &r.White
	}
	return &r.Black
}

func (r *BoardCastleRights) SetRights(c Color, rights ColorCastleRights) {
	*r.rightsFor(c) = rights
}
