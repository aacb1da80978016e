//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// startBlockSignal returns nil so the herald polls; build with -tags zmq for notifications.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan string, error) {
	if addr != "" {
		logger.Warn("built without zmq support, ignoring zmq address", zap.String("addr", addr))
	}
	return nil, nil
}
