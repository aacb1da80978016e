package telegram

import "errors"

// ErrDeliveryFailed is wrapped by every per-message delivery error.
var ErrDeliveryFailed = errors.New("telegram: delivery failed")
