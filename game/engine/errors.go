package engine

import "errors"

var (
	ErrInvalidSize      = errors.New("invalid board size")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = errors.New("position out of range")
	ErrNotRunning       = errors.New("game session is not running")
	ErrGameEnded        = errors.New("game session has ended")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrAlreadyMatched   = errors.New("card already matched")
)
