package ecash

import "errors"

var (
	// ErrNotFound is returned when the node does not know a block or transaction.
	ErrNotFound = errors.New("ecash: not found")
	// ErrNotGenesis is returned when a token id does not point at a genesis transaction.
	ErrNotGenesis = errors.New("ecash: transaction carries no token genesis")
	// ErrMissingPrevOutput is returned when a spent output could not be resolved.
	ErrMissingPrevOutput = errors.New("ecash: previous output not found")
)
