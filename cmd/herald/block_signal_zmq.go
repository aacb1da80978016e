//go:build zmq

package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

// startBlockSignal subscribes to the node's hashblock notifications and
// forwards each announced block hash. Only the latest unread hash is kept.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan string, error) {
	if addr == "" {
		return nil, nil
	}

	sub, err := newSubscriber(addr, "hashblock")
	if err != nil {
		return nil, fmt.Errorf("connect zmq: %w", err)
	}
	// Wake up RecvMessageBytes so cancellation is noticed.
	if err := sub.SetRcvtimeo(time.Second); err != nil {
		sub.Close()
		return nil, fmt.Errorf("configure zmq: %w", err)
	}

	logger = logger.Named("blockSignal")
	notify := make(chan string, 1)

	go func() {
		defer sub.Close()
		var gap announcementGap
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			msgParts, err := sub.RecvMessageBytes(0)
			if err != nil {
				if zmq4.AsErrno(err) == zmq4.Errno(syscall.EAGAIN) {
					continue
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			block, err := parseHashBlock(msgParts)
			if err != nil {
				logger.Warn("skip malformed block announcement", zap.Error(err))
				continue
			}
			if n := gap.missed(block); n > 0 {
				logger.Warn("block announcements missed; polling catches up",
					zap.Uint32("missed", n), zap.Uint32("seq", block.seq))
			}
			logger.Debug("block announced", zap.String("hash", block.hash), zap.Uint32("seq", block.seq))

			// Replace a stale unread hash with the newest one.
			select {
			case <-notify:
			default:
			}
			select {
			case notify <- block.hash:
			default:
			}
		}
	}()

	return notify, nil
}

func newSubscriber(addr string, topics ...string) (*zmq4.Socket, error) {
	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}

	for _, topic := range topics {
		if err := sub.SetSubscribe(topic); err != nil {
			sub.Close()
			return nil, err
		}
	}

	if err := sub.Connect(addr); err != nil {
		sub.Close()
		return nil, err
	}
	return sub, nil
}
