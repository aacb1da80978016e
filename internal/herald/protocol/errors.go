package protocol

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

var (
	// ErrInsufficientData is matched by failures caused by a payload that ends mid-field.
	ErrInsufficientData = script.ErrInsufficientData
	// ErrMalformed is matched by failures caused by a field that violates its protocol rules.
	ErrMalformed = errors.New("protocol: malformed payload")
	// ErrUnrecognizedProtocol names the outcome of a payload that matched no known prefix.
	// Decode reports it as an AppUnknown action, never as an error.
	ErrUnrecognizedProtocol = errors.New("protocol: unrecognized protocol")
	// ErrUnsupportedAction is returned by EncodeSLP for actions it cannot encode.
	ErrUnsupportedAction = errors.New("protocol: unsupported action")
)

// DecodeFailure describes why a payload could not be decoded.
type DecodeFailure struct {
	Protocol Protocol
	Reason   string
	// Offset is the byte offset from the start of the output script.
	Offset int
	Err    error
}

func (f *DecodeFailure) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", f.Protocol, f.Reason, f.Offset)
}

func (f *DecodeFailure) Unwrap() error {
	return f.Err
}

func malformedAt(offset int, format string, args ...any) error {
	return &DecodeFailure{Reason: fmt.Sprintf(format, args...), Offset: offset, Err: ErrMalformed}
}

// asFailure turns any decoder error into a DecodeFailure for protocol p.
func asFailure(p Protocol, err error, offset int) *DecodeFailure {
	var failure *DecodeFailure
	if errors.As(err, &failure) {
		out := *failure
		out.Protocol = p
		return &out
	}
	var short *script.InsufficientDataError
	if errors.As(err, &short) {
		return &DecodeFailure{Protocol: p, Reason: "insufficient data", Offset: short.Offset, Err: err}
	}
	return &DecodeFailure{Protocol: p, Reason: err.Error(), Offset: offset, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
}
