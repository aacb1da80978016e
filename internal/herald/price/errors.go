package price

import "errors"

// ErrPriceUnavailable wraps every failure to produce a complete quote set.
var ErrPriceUnavailable = errors.New("price: unavailable")
