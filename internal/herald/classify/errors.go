package classify

import "errors"

var (
	// ErrMalformedTransaction is returned for raw transactions missing required structure.
	ErrMalformedTransaction = errors.New("classify: malformed transaction")
	// ErrInvalidColoring is carried by token entries whose quantities do not balance.
	ErrInvalidColoring = errors.New("classify: invalid coloring")
)
