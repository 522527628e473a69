package engine

var (
	straightDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs = [4][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	knightDirs   = [8][2]int{{-2, -1}, {-1, -2}, {1, -2}, {2, -1}, {2, 1}, {1, 2}, {-1, 2}, {-2, 1}}
	kingDirs     = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {-1, -1}, {1, -1}}

	promotionKinds = [4]PieceKind{Knight, Bishop, Rook, Queen}
)

// probeMove appends the move by (df, dr) if the target square is on board and
// unoccupied or holds an enemy piece. Reports whether the target square was
// unoccupied, so slider loops know to keep stepping.
func probeMove(b *Board, piece Piece, from Square, df, dr int, moves *[]Move) bool {
	target := from.Delta(df, dr)
	if !target.IsOnBoard() {
		return false
	}

	targetPiece, ok := b.PieceAt(target)
	if !ok {
		*moves = append(*moves, NewMove(b, piece.Kind, from, target))
		return true
	}
	if targetPiece.Color != piece.Color {
		*moves = append(*moves, NewCapture(b, piece.Kind, from, target, PieceOnBoard{Piece: targetPiece, Square: target}))
	}
	return false
}

// genSliderMoves ray-casts for the directional pieces Bishop, Rook and Queen.
func genSliderMoves(b *Board, piece Piece, from Square, df, dr int, moves *[]Move) {
	for step := 1; probeMove(b, piece, from, df*step, dr*step, moves); step++ {
	}
}

// genPawnMove appends either a plain pawn move or, when the destination is the
// promotion rank, the four promotion variants in Knight, Bishop, Rook, Queen
// order.
func genPawnMove(b *Board, piece Piece, from, to Square, capture PieceOnBoard, hasCapture bool, moves *[]Move) {
	if to.Rank != piece.Color.PromotionRank() {
		if hasCapture {
			*moves = append(*moves, NewCapture(b, Pawn, from, to, capture))
		} else {
			*moves = append(*moves, NewMove(b, Pawn, from, to))
		}
		return
	}

	for _, promo := range promotionKinds {
		if hasCapture {
			*moves = append(*moves, NewPromotionCapture(b, from, to, capture, promo))
		} else {
			*moves = append(*moves, NewPromotion(b, from, to, promo))
		}
	}
}

// GenerateMoves enumerates all pseudo-legal moves for the side to move, in
// piece list order and, per piece, in a fixed per-kind direction order. Moves
// that would leave the mover's own king in check are not filtered out;
// callers needing full legality simulate each move and consult IsCheck.
func GenerateMoves(b *Board) []Move {
	var moves []Move

	for _, pob := range b.Pieces() {
		piece, square := pob.Piece, pob.Square
		if piece.Color != b.Side {
			continue
		}

		switch piece.Kind {
		case Pawn:
			forward := piece.Color.Forward()

			if push := square.Delta(0, forward); push.IsOnBoard() && !b.HasPieceAt(push) {
				genPawnMove(b, piece, square, push, PieceOnBoard{}, false, &moves)

				double := square.Delta(0, forward*2)
				if square.Rank == piece.Color.HomeRank() && double.IsOnBoard() && !b.HasPieceAt(double) {
					moves = append(moves, NewDoublePush(b, square, double, push))
				}
			}

			for _, df := range [2]int{-1, 1} {
				target := square.Delta(df, forward)
				if targetPiece, ok := b.PieceAt(target); ok && targetPiece.Color != piece.Color {
					genPawnMove(b, piece, square, target, PieceOnBoard{Piece: targetPiece, Square: target}, true, &moves)
				}

				if b.EnPassant != NoSquare && b.EnPassant == target {
					// The captured pawn sits beside the mover, not on the
					// destination square.
					victimSquare := square.Delta(df, 0)
					victim, ok := b.PieceAt(victimSquare)
					if !ok {
						continue
					}
					moves = append(moves, NewCapture(b, Pawn, square, target, PieceOnBoard{Piece: victim, Square: victimSquare}))
				}
			}

		case Rook:
			for _, d := range straightDirs {
				genSliderMoves(b, piece, square, d[0], d[1], &moves)
			}

		case Bishop:
			for _, d := range diagonalDirs {
				genSliderMoves(b, piece, square, d[0], d[1], &moves)
			}

		case Queen:
			for _, d := range straightDirs {
				genSliderMoves(b, piece, square, d[0], d[1], &moves)
			}
			for _, d := range diagonalDirs {
				genSliderMoves(b, piece, square, d[0], d[1], &moves)
			}

		case King:
			for _, d := range kingDirs {
				probeMove(b, piece, square, d[0], d[1], &moves)
			}

			backRank := piece.Color.BackRank()
			if b.Rights.Rights(piece.Color).Test(KingSide) {
				if !b.HasPieceAt(Sq(5, backRank)) && !b.HasPieceAt(Sq(6, backRank)) {
					moves = append(moves, NewCastleMove(b, piece.Color, KingSide))
				}
			}
			if b.Rights.Rights(piece.Color).Test(QueenSide) {
				if !b.HasPieceAt(Sq(1, backRank)) && !b.HasPieceAt(Sq(2, backRank)) && !b.HasPieceAt(Sq(3, backRank)) {
					moves = append(moves, NewCastleMove(b, piece.Color, QueenSide))
				}
			}

		case Knight:
			for _, d := range knightDirs {
				probeMove(b, piece, square, d[0], d[1], &moves)
			}

		case Dummy:
			// Occupies its square, moves nowhere.
		}
	}

	return moves
}

// IsCheck reports whether color's king is attacked. It scans the straight
// rays for rooks and queens, the diagonal rays for bishops and queens, the
// knight offsets for knights and the two pawn attack squares for pawns. A
// board without a king is not in check.
func IsCheck(b *Board, color Color) bool {
	kingSquare, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	attacker := color.Other()

	for _, d := range straightDirs {
		if p, ok := firstPieceAlong(b, kingSquare, d[0], d[1]); ok && p.Color == attacker && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
	}
	for _, d := range diagonalDirs {
		if p, ok := firstPieceAlong(b, kingSquare, d[0], d[1]); ok && p.Color == attacker && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}
	for _, d := range knightDirs {
		if p, ok := b.PieceAt(kingSquare.Delta(d[0], d[1])); ok && p.Color == attacker && p.Kind == Knight {
			return true
		}
	}

	// A pawn attacks against its own forward direction, so the attacker sits
	// diagonally forward of the king from the king's point of view.
	for _, df := range [2]int{-1, 1} {
		if p, ok := b.PieceAt(kingSquare.Delta(df, -attacker.Forward())); ok && p.Color == attacker && p.Kind == Pawn {
			return true
		}
	}

	return false
}

// firstPieceAlong walks the ray from start by (df, dr) and returns the first
// occupied square's piece.
func firstPieceAlong(b *Board, start Square, df, dr int) (Piece, bool) {
	for target := start.Delta(df, dr); target.IsOnBoard(); target = target.Delta(df, dr) {
		if p, ok := b.PieceAt(target); ok {
			return p, true
		}
	}
	return Piece{}, false
}
