package script

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is matched by every read past the end of a cursor.
	ErrInsufficientData = errors.New("script: insufficient data")
	ErrNotPush          = errors.New("script: opcode is not a push")
	ErrOddLength        = errors.New("script: odd-length hex")
	ErrInvalidHex       = errors.New("script: invalid hex")
)

// InsufficientDataError reports a read that would cross the end of the payload.
type InsufficientDataError struct {
	Offset int
	Need   int
	Have   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("script: insufficient data at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// Is makes errors.Is(err, ErrInsufficientData) match.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
