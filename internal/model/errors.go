package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNoPieceAtSquare  = errors.New("no piece at from square")
	ErrIllegalMove      = errors.New("move is not legal")
	ErrBadPromotion     = errors.New("unknown promotion piece")
	ErrGameOver         = errors.New("game is over")
	ErrUnknownEvaluator = errors.New("unknown evaluator")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
)
