package search

import (
	"github.com/twiess/tactician-backend/internal/engine"
)

// BestMove evaluates every move available to the side to move and returns
// the one with the best score from that side's perspective. Ties keep the
// earlier move in generation order. Reports false when no move exists, which
// is the expected terminal condition (checkmate or stalemate,
// undifferentiated) rather than an error.
func BestMove(b *engine.Board, evaluator Evaluator) (engine.Move, bool) {
	moves := engine.GenerateMoves(b)
	if len(moves) == 0 {
		return engine.Move{}, false
	}

	neg := b.Side.Sign()

	var bestMove engine.Move
	var bestEvaluation float64
	found := false

	for _, m := range moves {
		b.ApplyMove(m)
		evaluation := evaluator.Evaluate(b) * neg
		b.RevertMove(m)

		if !found || evaluation > bestEvaluation {
			found = true
			bestMove = m
			bestEvaluation = evaluation
		}
	}

	return bestMove, true
}
