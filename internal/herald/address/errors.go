package address

import "errors"

var (
	// ErrInvalidAddress is returned for strings that are not valid cashaddr.
	ErrInvalidAddress = errors.New("address: invalid cashaddr")
	// ErrUnsupportedScript is returned for output scripts without an address form.
	ErrUnsupportedScript = errors.New("address: unsupported script")
)
