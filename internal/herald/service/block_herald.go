// Package service runs the herald loops: one message per new block and a
// daily summary of the last 24 hours.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/clock"
	"go.uber.org/zap"
)

// BlockHeraldService follows the chain tip and heralds every new block.
type BlockHeraldService struct {
	logger         *zap.Logger
	metrics        BlockHeraldMetrics
	sleep          func(context.Context, time.Duration) error
	sleepDuration  time.Duration
	pollDuration   time.Duration
	heightFetcher  HeightFetcher
	blockProcessor BlockProcessor
	blockSignal    <-chan string

	failedHeight uint64
	failures     int
}

// NewBlockHeraldService builds a BlockHeraldService. A nil delivery logs
// messages instead of sending them; a nil prices source leaves quotes out.
// startHeight 0 means the first block after the current tip. A block hash
// announced on blockSignal ends the poll interval early.
func NewBlockHeraldService(
	source ChainSource,
	classifier Classifier,
	prices PriceSource,
	delivery Delivery,
	metrics BlockHeraldMetrics,
	cfg Config,
	startHeight uint64,
	logger *zap.Logger,
	blockSignal <-chan string,
) (*BlockHeraldService, error) {
	if source == nil {
		return nil, errors.New("block herald chain source is required")
	}
	if classifier == nil {
		return nil, errors.New("block herald classifier is required")
	}
	if metrics == nil {
		return nil, errors.New("block herald metrics is required")
	}
	if delivery != nil && cfg.ChatID == "" {
		return nil, errors.New("block herald chat id is required")
	}
	logger = logger.Named("blockHerald")

	return &BlockHeraldService{
		logger:        logger,
		metrics:       metrics,
		sleep:         clock.SleepWithContext,
		sleepDuration: sleepDuration,
		pollDuration:  pollDuration,
		blockSignal:   blockSignal,
		heightFetcher: &blockHeightFetcher{
			source: source,
			next:   startHeight,
			limit:  maxHeightsPerFetch,
		},
		blockProcessor: &blockProcessor{
			source:     source,
			classifier: classifier,
			prices:     prices,
			delivery:   delivery,
			cfg:        cfg,
			logger:     logger.Named("blockProcessor"),
		},
	}, nil
}

// Run heralds blocks until the context is canceled.
func (s *BlockHeraldService) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.wait(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *BlockHeraldService) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchHeight(err, started)
	if err != nil {
		s.logger.Error("fetch new heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("no new blocks; sleeping", zap.Duration("sleep", s.pollDuration))
		return s.wait(ctx, s.pollDuration)
	}

	for _, h := range heights {
		started = time.Now()
		txs, err := s.blockProcessor.Process(ctx, h)
		s.metrics.ObserveProcessBlock(err, h, txs, started)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !s.giveUp(h) {
				return err
			}
			s.logger.Error("skipping block after repeated failures",
				zap.Uint64("height", h), zap.Int("attempts", s.failures), zap.Error(err))
		}
		s.heightFetcher.Commit(h)
	}
	return nil
}

// giveUp counts a failure of height and reports whether it should be skipped.
func (s *BlockHeraldService) giveUp(height uint64) bool {
	if s.failedHeight != height {
		s.failedHeight, s.failures = height, 0
	}
	s.failures++
	return s.failures >= maxBlockAttempts
}

func (s *BlockHeraldService) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case hash := <-s.blockSignal:
		s.logger.Debug("woken by block announcement", zap.String("hash", hash))
		return nil
	case <-timer.C:
		return nil
	}
}
