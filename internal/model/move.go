package model

import (
	"github.com/twiess/tactician-backend/internal/engine"
)

// SquareRef addresses a board square in client payloads.
type SquareRef struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (s SquareRef) square() engine.Square {
	return engine.Sq(s.File, s.Rank)
}

func squareRef(sq engine.Square) SquareRef {
	return SquareRef{File: sq.File, Rank: sq.Rank}
}

// MoveRequest is a move submitted by a client, over REST or the socket.
// Promotion names the piece kind to promote to and is empty otherwise.
type MoveRequest struct {
	From      SquareRef `json:"from"`
	To        SquareRef `json:"to"`
	Promotion string    `json:"promotion"`
}

// EngineRequest asks the engine to pick and play a move.
type EngineRequest struct {
	Depth     int    `json:"depth"`
	Evaluator string `json:"evaluator"`
}

// ClientMove is a generated move rendered for clients.
type ClientMove struct {
	From      SquareRef `json:"from"`
	To        SquareRef `json:"to"`
	Piece     string    `json:"piece"`
	Capture   bool      `json:"capture"`
	Promotion string    `json:"promotion,omitempty"`
	Notation  string    `json:"notation"`
}

func clientMove(m engine.Move) ClientMove {
	cm := ClientMove{
		From:     squareRef(m.From),
		To:       squareRef(m.To),
		Piece:    m.Kind.String(),
		Capture:  m.HasCapture,
		Notation: m.LongAlgebraic(),
	}
	if m.Promotion != engine.NoKind {
		cm.Promotion = m.Promotion.String()
	}
	return cm
}

// EngineMoveResult reports the move the engine chose together with its
// search statistics and principal line.
type EngineMoveResult struct {
	Move       ClientMove `json:"move"`
	Evaluation float64    `json:"evaluation"`
	Nodes      uint64     `json:"nodes"`
	DurationMs int64      `json:"durationMs"`
	Line       string     `json:"line"`
}

func parseKind(name string) (engine.PieceKind, bool) {
	switch name {
	case "knight":
		return engine.Knight, true
	case "bishop":
		return engine.Bishop, true
	case "rook":
		return engine.Rook, true
	case "queen":
		return engine.Queen, true
	case "":
		return engine.NoKind, true
	}
	return engine.NoKind, false
}
