package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "token_cache",
		Name:      "lookups_total",
		Help:      "Count of token metadata cache lookups.",
	}, []string{"result"})

	tokenCacheFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "token_cache",
		Name:      "fetch_total",
		Help:      "Count of token metadata fetches.",
	}, []string{"status"})

	tokenCacheFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "token_cache",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of token metadata fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// TokenCache tracks token metadata cache behaviour.
type TokenCache struct{}

// NewTokenCache constructs a TokenCache metrics collector.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// ObserveLookup records a cache hit or miss.
func (m TokenCache) ObserveLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	tokenCacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveFetch records one call of the metadata collaborator.
func (m TokenCache) ObserveFetch(err error, started time.Time) {
	s := status(err)
	tokenCacheFetchTotal.WithLabelValues(s).Inc()
	tokenCacheFetchDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}
