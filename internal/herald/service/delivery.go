package service

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/price"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/telegram"
	"go.uber.org/zap"
)

// deliver sends msgs, or logs them when d is nil. It fails only when no
// message got through, so a retry never repeats a delivered message.
func deliver(ctx context.Context, d Delivery, chatID string, msgs []string, logger *zap.Logger) error {
	if len(msgs) == 0 {
		return nil
	}
	if d == nil {
		for i, msg := range msgs {
			logger.Info("dry run message", zap.Int("index", i), zap.String("text", msg))
		}
		return nil
	}

	results := d.Send(ctx, chatID, msgs)
	failed := telegram.Failed(results)
	switch {
	case failed == 0:
		return nil
	case failed == len(results):
		return fmt.Errorf("deliver %d messages: %w", len(msgs), results[0].Err)
	default:
		for _, r := range results {
			if r.Err != nil {
				logger.Warn("message not delivered", zap.Int("index", r.Index), zap.Error(r.Err))
			}
		}
		return nil
	}
}

// quotes returns nil when prices are off or unavailable; summaries go out without them.
func quotes(ctx context.Context, src PriceSource, cfg price.Config, logger *zap.Logger) []model.Price {
	if src == nil {
		return nil
	}
	prices, err := src.GetPrices(ctx, cfg)
	if err != nil {
		logger.Warn("prices unavailable", zap.Error(err))
		return nil
	}
	return prices
}
