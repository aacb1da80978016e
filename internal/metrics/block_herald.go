package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	heraldFetchHeightTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "fetch_height_total",
		Help:      "Count of attempts to fetch the chain tip.",
	}, []string{"status"})

	heraldFetchHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "fetch_height_duration_seconds",
		Help:      "Duration of fetching the chain tip.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	heraldProcessBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "process_block_total",
		Help:      "Count of heralded blocks.",
	}, []string{"status"})

	heraldProcessBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "process_block_duration_seconds",
		Help:      "Duration of heralding a block, delivery included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	heraldBlockSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "block_transactions",
		Help:      "Number of transactions per heralded block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})

	heraldLastHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "block_herald",
		Name:      "last_height",
		Help:      "Height of the last heralded block.",
	})

	dailySummaryRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "daily_summary",
		Name:      "runs_total",
		Help:      "Count of daily summary runs.",
	}, []string{"status"})

	dailySummaryRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "daily_summary",
		Name:      "run_duration_seconds",
		Help:      "Duration of a daily summary run.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
	}, []string{"status"})
)

// BlockHerald tracks metrics for the block herald loop.
type BlockHerald struct{}

// NewBlockHerald constructs a BlockHerald metrics collector.
func NewBlockHerald() *BlockHerald {
	return &BlockHerald{}
}

// ObserveFetchHeight records a tip fetch outcome and duration.
func (m BlockHerald) ObserveFetchHeight(err error, started time.Time) {
	s := status(err)
	heraldFetchHeightTotal.WithLabelValues(s).Inc()
	heraldFetchHeightDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

// ObserveProcessBlock records processing of a single block.
func (m BlockHerald) ObserveProcessBlock(err error, height uint64, txs int, started time.Time) {
	s := status(err)
	heraldProcessBlockTotal.WithLabelValues(s).Inc()
	heraldProcessBlockDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	heraldBlockSize.Observe(float64(txs))
	heraldLastHeight.Set(float64(height))
}

// DailySummary tracks metrics for the daily summary loop.
type DailySummary struct{}

// NewDailySummary constructs a DailySummary metrics collector.
func NewDailySummary() *DailySummary {
	return &DailySummary{}
}

// ObserveRun records one daily summary run.
func (m DailySummary) ObserveRun(err error, started time.Time) {
	s := status(err)
	dailySummaryRunsTotal.WithLabelValues(s).Inc()
	dailySummaryRunDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}
