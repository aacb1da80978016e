package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decoderPayloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "decoder",
		Name:      "payloads_total",
		Help:      "Count of decoded OP_RETURN payloads by protocol.",
	}, []string{"protocol", "status"})

	classifierTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "classifier",
		Name:      "transactions_total",
		Help:      "Count of classified transactions by category.",
	}, []string{"category"})

	classifierTokenEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "classifier",
		Name:      "token_entries_total",
		Help:      "Count of token entries by validity.",
	}, []string{"validity"})

	classifierBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "classifier",
		Name:      "batch_duration_seconds",
		Help:      "Duration of classifying a batch of transactions.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Classifier tracks decode and classification outcomes.
type Classifier struct{}

// NewClassifier constructs a Classifier metrics collector.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ObserveDecode records the outcome of decoding one payload.
func (m Classifier) ObserveDecode(protocol string, err error) {
	decoderPayloadsTotal.WithLabelValues(orUnknown(protocol), status(err)).Inc()
}

// ObserveTransaction records a classified transaction and its token entries.
func (m Classifier) ObserveTransaction(category string, validEntries, invalidEntries int) {
	classifierTransactionsTotal.WithLabelValues(orUnknown(category)).Inc()
	if validEntries > 0 {
		classifierTokenEntriesTotal.WithLabelValues("valid").Add(float64(validEntries))
	}
	if invalidEntries > 0 {
		classifierTokenEntriesTotal.WithLabelValues("invalid").Add(float64(invalidEntries))
	}
}

// ObserveBatch records the duration of a batch classification.
func (m Classifier) ObserveBatch(started time.Time) {
	classifierBatchDuration.Observe(time.Since(started).Seconds())
}
