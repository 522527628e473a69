package search

import (
	"strings"

	"github.com/twiess/tactician-backend/internal/engine"
)

// Line is a sequence of moves, usually the principal variation a search
// considers best from the current position.
type Line struct {
	Moves []engine.Move
}

// PushFront prepends a move, building the line up while unwinding recursion.
func (l *Line) PushFront(m engine.Move) {
	moves := make([]engine.Move, 0, len(l.Moves)+1)
	moves = append(moves, m)
	moves = append(moves, l.Moves...)
	l.Moves = moves
}

// String renders the line in long algebraic notation, e.g. "a1-a3 a6-a5".
func (l *Line) String() string {
	parts := make([]string, len(l.Moves))
	for i, m := range l.Moves {
		parts[i] = m.LongAlgebraic()
	}
	return strings.Join(parts, " ")
}
