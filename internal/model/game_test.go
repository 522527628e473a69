package model

import (
	"errors"
	"testing"

	"github.com/twiess/tactician-backend/internal/engine"
)

func TestAddPlayer(t *testing.T) {
	g := NewGame("test")

	color, err := g.AddPlayer("alice")
	if err != nil || color != PlayerColorWhite {
		t.Fatalf("first seat = %v, %v, want white", color, err)
	}

	color, err = g.AddPlayer("bob")
	if err != nil || color != PlayerColorBlack {
		t.Fatalf("second seat = %v, %v, want black", color, err)
	}

	if _, err := g.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("third seat error = %v, want ErrGameFull", err)
	}

	if !g.IsPlayerInGame("alice") || !g.IsPlayerInGame("bob") {
		t.Fatal("seated players not recognized")
	}
	if g.IsPlayerInGame("carol") {
		t.Fatal("unseated player recognized")
	}
	if g.CanSpectate() {
		t.Fatal("full game still spectatable")
	}
}

func TestMakeMoveValidation(t *testing.T) {
	tests := []struct {
		name string
		req  MoveRequest
		want error
	}{
		{
			name: "no piece on the from square",
			req:  MoveRequest{From: SquareRef{4, 4}, To: SquareRef{4, 5}},
			want: ErrNoPieceAtSquare,
		},
		{
			name: "moving the opponent's piece",
			req:  MoveRequest{From: SquareRef{4, 6}, To: SquareRef{4, 5}},
			want: ErrNotYourTurn,
		},
		{
			name: "unknown promotion piece",
			req:  MoveRequest{From: SquareRef{4, 1}, To: SquareRef{4, 2}, Promotion: "king"},
			want: ErrBadPromotion,
		},
		{
			name: "rook cannot jump its own pawn",
			req:  MoveRequest{From: SquareRef{0, 0}, To: SquareRef{0, 4}},
			want: ErrIllegalMove,
		},
		{
			name: "pawn push",
			req:  MoveRequest{From: SquareRef{4, 1}, To: SquareRef{4, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame("test")
			err := g.MakeMove("", tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("MakeMove error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMakeMoveEnforcesSeat(t *testing.T) {
	g := NewGame("test")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	push := MoveRequest{From: SquareRef{4, 1}, To: SquareRef{4, 3}}
	if err := g.MakeMove("bob", push); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("black playing white's move: %v, want ErrNotYourTurn", err)
	}

	if err := g.MakeMove("alice", push); err != nil {
		t.Fatalf("white's own move failed: %v", err)
	}

	reply := MoveRequest{From: SquareRef{4, 6}, To: SquareRef{4, 4}}
	if err := g.MakeMove("alice", reply); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("white playing black's move: %v, want ErrNotYourTurn", err)
	}
	if err := g.MakeMove("bob", reply); err != nil {
		t.Fatalf("black's own move failed: %v", err)
	}
}

func TestMakeMoveUpdatesState(t *testing.T) {
	g := NewGame("test")

	if err := g.MakeMove("", MoveRequest{From: SquareRef{4, 1}, To: SquareRef{4, 3}}); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}

	state := g.GetState()
	if state.ToMove != "black" {
		t.Fatalf("toMove = %q, want black", state.ToMove)
	}
	if len(state.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.History))
	}
	if state.LastMove == nil || state.LastMove.Notation != "e1-e3" {
		t.Fatalf("last move = %+v, want notation e1-e3", state.LastMove)
	}
	if state.EnPassant == nil || *state.EnPassant != (SquareRef{4, 2}) {
		t.Fatalf("en passant target = %v, want (4, 2)", state.EnPassant)
	}
	if len(state.Placements) != 32 {
		t.Fatalf("placement count = %d, want 32", len(state.Placements))
	}
	if state.Evaluation != 0.0 {
		t.Fatalf("evaluation = %v, want 0", state.Evaluation)
	}
}

func TestLegalMovesInitialPosition(t *testing.T) {
	g := NewGame("test")

	if got := len(g.LegalMoves()); got != 20 {
		t.Fatalf("legal move count = %d, want 20", got)
	}
}

func TestLegalMovesFilterKingExposure(t *testing.T) {
	g := NewGame("test")

	// A pinned rook: moving it off the king's file exposes the king.
	b := engine.NewBoard()
	b.AddPieces(
		engine.King.Colored(engine.White).At(4, 0),
		engine.Rook.Colored(engine.White).At(4, 1),
		engine.Rook.Colored(engine.Black).At(4, 7))
	g.board = b

	for _, m := range g.LegalMoves() {
		if m.From == (SquareRef{4, 1}) && m.To.File != 4 {
			t.Fatalf("pinned rook may not play %s", m.Notation)
		}
	}
}

func TestEngineMove(t *testing.T) {
	g := NewGame("test")

	result, err := g.EngineMove(EngineRequest{Depth: 2})
	if err != nil {
		t.Fatalf("EngineMove: %v", err)
	}
	if result.Move.Notation == "" {
		t.Fatal("engine move has no notation")
	}
	if result.Nodes == 0 {
		t.Fatal("engine move reports zero nodes")
	}
	if result.Line == "" {
		t.Fatal("engine move reports no principal line")
	}

	state := g.GetState()
	if state.ToMove != "black" {
		t.Fatalf("toMove after engine move = %q, want black", state.ToMove)
	}
	if len(state.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.History))
	}
}

func TestEngineMoveEvaluatorSelection(t *testing.T) {
	g := NewGame("test")

	if _, err := g.EngineMove(EngineRequest{Depth: 1, Evaluator: "mcts"}); !errors.Is(err, ErrUnknownEvaluator) {
		t.Fatalf("unknown evaluator error = %v, want ErrUnknownEvaluator", err)
	}

	if _, err := g.EngineMove(EngineRequest{Depth: 2, Evaluator: "minimax"}); err != nil {
		t.Fatalf("minimax engine move: %v", err)
	}
	if _, err := g.EngineMove(EngineRequest{Depth: 2, Evaluator: "alphabeta"}); err != nil {
		t.Fatalf("alpha-beta engine move: %v", err)
	}
}

func TestEngineMoveOnFinishedGame(t *testing.T) {
	g := NewGame("test")
	g.board = engine.NewBoard()

	if _, err := g.EngineMove(EngineRequest{Depth: 2}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("engine move without moves = %v, want ErrGameOver", err)
	}
}

func TestClientMoveRendering(t *testing.T) {
	b := engine.NewBoard()
	b.AddPieces(engine.Pawn.Colored(engine.White).At(1, 6))

	m := engine.NewPromotion(b, engine.Sq(1, 6), engine.Sq(1, 7), engine.Queen)
	cm := clientMove(m)

	if cm.Piece != "pawn" || cm.Promotion != "queen" || cm.Capture {
		t.Fatalf("client move = %+v", cm)
	}
	if cm.Notation != "b6-b7" {
		t.Fatalf("notation = %q, want b6-b7", cm.Notation)
	}
}
