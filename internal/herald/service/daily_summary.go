package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/format"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/summary"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/workerpool"
	"go.uber.org/zap"
)

// DailySummaryService posts a summary of the previous 24 hours once a day.
type DailySummaryService struct {
	logger     *zap.Logger
	metrics    DailySummaryMetrics
	source     ChainSource
	classifier Classifier
	prices     PriceSource
	delivery   Delivery
	cfg        Config
	hour       int
	now        func() time.Time
	sleep      func(context.Context, time.Duration) error
}

// NewDailySummaryService builds a DailySummaryService firing at hour:00 UTC.
func NewDailySummaryService(
	source ChainSource,
	classifier Classifier,
	prices PriceSource,
	delivery Delivery,
	metrics DailySummaryMetrics,
	cfg Config,
	hour int,
	logger *zap.Logger,
) (*DailySummaryService, error) {
	if source == nil {
		return nil, errors.New("daily summary chain source is required")
	}
	if classifier == nil {
		return nil, errors.New("daily summary classifier is required")
	}
	if metrics == nil {
		return nil, errors.New("daily summary metrics is required")
	}
	if delivery != nil && cfg.ChatID == "" {
		return nil, errors.New("daily summary chat id is required")
	}
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("daily summary hour %d out of range", hour)
	}

	return &DailySummaryService{
		logger:     logger.Named("dailySummary"),
		metrics:    metrics,
		source:     source,
		classifier: classifier,
		prices:     prices,
		delivery:   delivery,
		cfg:        cfg,
		hour:       hour,
		now:        time.Now,
		sleep:      clock.SleepWithContext,
	}, nil
}

// Run waits for each daily run until the context is canceled. A failed run
// is logged and the next one is scheduled as usual.
func (s *DailySummaryService) Run(ctx context.Context) error {
	var last time.Time
	for {
		next := clock.NextDailyRun(s.now(), s.hour)
		if !next.After(last) {
			next = last.AddDate(0, 0, 1)
		}
		s.logger.Info("next daily summary scheduled", zap.Time("at", next))
		if err := s.sleep(ctx, next.Sub(s.now())); err != nil {
			return err
		}
		last = next

		started := time.Now()
		err := s.RunOnce(ctx, next)
		s.metrics.ObserveRun(err, started)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Error("daily summary failed", zap.Time("end", next), zap.Error(err))
		}
	}
}

// RunOnce summarizes and delivers the 24 hours ending at end.
func (s *DailySummaryService) RunOnce(ctx context.Context, end time.Time) error {
	start, end := clock.DailyWindow(end)
	heights, err := s.windowHeights(ctx, start, end)
	if err != nil {
		return err
	}

	perBlock, err := workerpool.Map(ctx, windowBlockWorkers, heights, func(ctx context.Context, h uint64) ([]model.RawTransaction, error) {
		_, raw, err := s.source.GetBlockTransactions(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("fetch block %d: %w", h, err)
		}
		return raw, nil
	}, func() {
		s.logger.Warn("window collection cancelled")
	})
	if err != nil {
		return fmt.Errorf("collect window: %w", err)
	}
	var raw []model.RawTransaction
	for _, b := range perBlock {
		raw = append(raw, b...)
	}
	// One batch for the whole window, so token metadata is fetched once per run.
	txs, err := s.classifier.ClassifyBatch(ctx, raw, s.cfg.workers())
	if err != nil {
		return fmt.Errorf("classify window: %w", err)
	}

	sum := summary.Aggregate(txs, summary.TimeWindow(start, end), summary.Options{
		TopTokens: s.cfg.TopTokens,
		Notable:   s.cfg.Notable,
		Prices:    quotes(ctx, s.prices, s.cfg.Price, s.logger),
	})
	msgs := format.WindowMessages(sum)
	if err := deliver(ctx, s.delivery, s.cfg.ChatID, msgs, s.logger); err != nil {
		return err
	}

	s.logger.Info("daily summary delivered",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("blocks", len(heights)),
		zap.Int("txs", sum.TxCount),
		zap.Int("messages", len(msgs)),
	)
	return nil
}

// windowHeights walks back from the tip and returns, ascending, the heights
// of blocks timestamped in (start, end].
func (s *DailySummaryService) windowHeights(ctx context.Context, start, end time.Time) ([]uint64, error) {
	latest, err := s.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}

	var heights []uint64
	for i, h := 0, latest; i < maxWindowBlocks; i, h = i+1, h-1 {
		block, err := s.source.BlockHeader(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("block header %d: %w", h, err)
		}
		ts := time.Unix(block.Timestamp, 0)
		if !ts.After(start) {
			break
		}
		if !ts.After(end) {
			heights = append(heights, h)
		}
		if h == 0 {
			break
		}
	}
	slices.Reverse(heights)
	return heights, nil
}
