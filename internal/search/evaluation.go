package search

import (
	"math"
	"time"

	"github.com/twiess/tactician-backend/internal/engine"
)

// StaticEvaluation is the signed material sum over all pieces, White
// positive. It ignores the side to move.
func StaticEvaluation(b *engine.Board) float64 {
	var evaluation float64
	for _, p := range b.Pieces() {
		evaluation += p.Piece.Value()
	}
	return evaluation
}

// Statistics accumulates search effort across Evaluate calls.
type Statistics struct {
	Nodes    uint64
	Duration time.Duration
}

// Evaluator is a fixed-depth search strategy over a board. Evaluate mutates
// the board through apply/revert pairs and leaves it as it found it. The
// returned score is always from White's perspective.
type Evaluator interface {
	Evaluate(b *engine.Board) float64
	BestLine() *Line
	Statistics() Statistics
}

// Minimax is the full-width negamax search: every node explores every move.
type Minimax struct {
	stats    Statistics
	bestLine Line
	maxDepth int
}

func NewMinimax(maxDepth int) *Minimax {
	return &Minimax{maxDepth: maxDepth}
}

func (e *Minimax) Evaluate(b *engine.Board) float64 {
	e.bestLine = Line{}

	neg := b.Side.Sign()

	start := time.Now()
	evaluation, line := e.minimax(b, 0, neg)
	e.bestLine = line
	e.stats.Duration += time.Since(start)

	return evaluation
}

// minimax searches to the depth limit, negating the sign convention each ply
// so a single maximization serves both sides.
func (e *Minimax) minimax(b *engine.Board, depth int, neg float64) (float64, Line) {
	e.stats.Nodes++

	if depth == e.maxDepth {
		return StaticEvaluation(b), Line{}
	}

	moves := engine.GenerateMoves(b)
	if len(moves) == 0 {
		return StaticEvaluation(b), Line{}
	}

	var best float64
	var bestLine Line
	haveBest := false

	for _, m := range moves {
		b.ApplyMove(m)
		evaluation, line := e.minimax(b, depth+1, -neg)
		evaluation *= neg
		b.RevertMove(m)

		if !haveBest || evaluation > best {
			haveBest = true
			best = evaluation
			bestLine = line
			bestLine.PushFront(m)
		}
	}

	return best * neg, bestLine
}

func (e *Minimax) BestLine() *Line {
	return &e.bestLine
}

func (e *Minimax) Statistics() Statistics {
	return e.stats
}

// AlphaBeta prunes branches that cannot influence the result, via explicit
// white-maximizes / black-minimizes procedures. It tracks its principal line
// the same way Minimax does.
type AlphaBeta struct {
	stats    Statistics
	bestLine Line
	maxDepth int
}

func NewAlphaBeta(maxDepth int) *AlphaBeta {
	return &AlphaBeta{maxDepth: maxDepth}
}

func (e *AlphaBeta) Evaluate(b *engine.Board) float64 {
	e.bestLine = Line{}

	// Seed the window with the largest finite values rather than infinities,
	// keeping comparisons NaN-free.
	start := time.Now()
	var evaluation float64
	var line Line
	if b.Side == engine.White {
		evaluation, line = e.alphaBetaMax(b, -math.MaxFloat64, math.MaxFloat64, 0)
	} else {
		evaluation, line = e.alphaBetaMin(b, -math.MaxFloat64, math.MaxFloat64, 0)
	}
	e.bestLine = line
	e.stats.Duration += time.Since(start)

	return evaluation
}

func (e *AlphaBeta) alphaBetaMax(b *engine.Board, alpha, beta float64, depth int) (float64, Line) {
	e.stats.Nodes++

	if depth == e.maxDepth {
		return StaticEvaluation(b), Line{}
	}

	moves := engine.GenerateMoves(b)
	if len(moves) == 0 {
		return StaticEvaluation(b), Line{}
	}

	var best float64
	var bestLine Line
	haveBest := false

	for _, m := range moves {
		b.ApplyMove(m)
		evaluation, line := e.alphaBetaMin(b, alpha, beta, depth+1)
		b.RevertMove(m)

		if evaluation >= beta {
			line.PushFront(m)
			return evaluation, line
		}
		if evaluation > alpha {
			alpha = evaluation
		}

		if !haveBest || evaluation > best {
			haveBest = true
			best = evaluation
			bestLine = line
			bestLine.PushFront(m)
		}
	}

	return best, bestLine
}

func (e *AlphaBeta) alphaBetaMin(b *engine.Board, alpha, beta float64, depth int) (float64, Line) {
	e.stats.Nodes++

	if depth == e.maxDepth {
		return StaticEvaluation(b), Line{}
	}

	moves := engine.GenerateMoves(b)
	if len(moves) == 0 {
		return StaticEvaluation(b), Line{}
	}

	var best float64
	var bestLine Line
	haveBest := false

	for _, m := range moves {
		b.ApplyMove(m)
		evaluation, line := e.alphaBetaMax(b, alpha, beta, depth+1)
		b.RevertMove(m)

		if evaluation <= alpha {
			line.PushFront(m)
			return evaluation, line
		}
		if evaluation < beta {
			beta = evaluation
		}

		if !haveBest || evaluation < best {
			haveBest = true
			best = evaluation
			bestLine = line
			bestLine.PushFront(m)
		}
	}

	return best, bestLine
}

func (e *AlphaBeta) BestLine() *Line {
	return &e.bestLine
}

func (e *AlphaBeta) Statistics() Statistics {
	return e.stats
}
