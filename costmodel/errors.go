package costmodel

import "errors"

// Every message is prefixed with "costmodel: ..." for easy grepping. Callers
// match with errors.Is; context is added with fmt.Errorf("ctx: %w", ErrX).
var (
	// ErrInvalidParameter is returned for an out-of-range p, an empty or ragged
	// cost matrix, a demand vector whose length differs from the number of
	// customers, or malformed name lists.
	ErrInvalidParameter = errors.New("costmodel: invalid parameter")

	// ErrInvalidAssignment is returned by Verify when a selected set or an
	// assignment is not consistent with the model.
	ErrInvalidAssignment = errors.New("costmodel: invalid assignment")

	// ErrNaNInf signals a NaN or ±Inf cost or demand.
	ErrNaNInf = errors.New("costmodel: NaN or Inf encountered")

	// ErrNegative signals a cost or demand below zero.
	ErrNegative = errors.New("costmodel: negative value")
)
