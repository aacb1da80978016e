package service

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/format"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/summary"
	"go.uber.org/zap"
)

type blockProcessor struct {
	source     ChainSource
	classifier Classifier
	prices     PriceSource
	delivery   Delivery
	cfg        Config
	logger     *zap.Logger
}

// Process heralds one block and returns its transaction count.
func (p *blockProcessor) Process(ctx context.Context, height uint64) (int, error) {
	block, raw, err := p.source.GetBlockTransactions(ctx, height)
	if err != nil {
		return 0, fmt.Errorf("fetch block %d: %w", height, err)
	}
	txs, err := p.classifier.ClassifyBatch(ctx, raw, p.cfg.workers())
	if err != nil {
		return len(raw), fmt.Errorf("classify block %d: %w", height, err)
	}

	s := summary.Aggregate(txs, summary.BlockWindow(block), summary.Options{
		TopTokens: p.cfg.TopTokens,
		Notable:   p.cfg.Notable,
		Prices:    quotes(ctx, p.prices, p.cfg.Price, p.logger),
	})
	msgs := format.BlockMessages(s)
	if err := deliver(ctx, p.delivery, p.cfg.ChatID, msgs, p.logger); err != nil {
		return len(raw), fmt.Errorf("deliver block %d: %w", height, err)
	}

	p.logger.Info("block heralded",
		zap.Uint64("height", height),
		zap.String("hash", block.Hash),
		zap.Int("txs", len(raw)),
		zap.Int("messages", len(msgs)),
	)
	return len(raw), nil
}
