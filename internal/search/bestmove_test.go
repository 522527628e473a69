package search

import (
	"testing"

	"github.com/twiess/tactician-backend/internal/engine"
)

func TestBestMovePicksTheCapture(t *testing.T) {
	b := boardWith(
		engine.Pawn.Colored(engine.White).At(0, 1),
		engine.Pawn.Colored(engine.Black).At(1, 2))

	for _, evaluator := range []Evaluator{NewMinimax(2), NewAlphaBeta(2)} {
		move, ok := BestMove(b, evaluator)
		if !ok {
			t.Fatal("no move found on a board with moves")
		}
		if !move.HasCapture || move.To != engine.Sq(1, 2) {
			t.Fatalf("best move = %s, want the capture on (1, 2)", move.LongAlgebraic())
		}
	}
}

func TestBestMoveForBlack(t *testing.T) {
	b := boardWith(
		engine.Pawn.Colored(engine.Black).At(0, 6),
		engine.Pawn.Colored(engine.White).At(1, 5))
	b.Side = engine.Black

	move, ok := BestMove(b, NewAlphaBeta(2))
	if !ok {
		t.Fatal("no move found on a board with moves")
	}
	if !move.HasCapture || move.To != engine.Sq(1, 5) {
		t.Fatalf("best move = %s, want the capture on (1, 5)", move.LongAlgebraic())
	}
}

func TestBestMoveWithoutMoves(t *testing.T) {
	if _, ok := BestMove(engine.NewBoard(), NewMinimax(2)); ok {
		t.Fatal("found a move on an empty board")
	}
}

func TestBestMoveLeavesBoardIntact(t *testing.T) {
	b := engine.NewPopulatedBoard()
	original := b.Clone()

	if _, ok := BestMove(b, NewAlphaBeta(2)); !ok {
		t.Fatal("no move found in the starting position")
	}
	if !b.SemanticEq(original) {
		t.Fatal("BestMove left the board mutated")
	}
}
