package engine

import "errors"

// ErrInvalidInput is returned when the stock size, a demand's dimensions
// or quantity, or the kerf fail basic validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrInfeasiblePiece is returned when a demanded piece cannot fit inside
// an empty panel under any admissible orientation.
var ErrInfeasiblePiece = errors.New("infeasible piece")
