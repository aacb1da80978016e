package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveryMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "delivery",
		Name:      "messages_total",
		Help:      "Count of delivered chat messages.",
	}, []string{"status"})
	deliveryMessageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "delivery",
		Name:      "message_duration_seconds",
		Help:      "Duration of delivering one chat message, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	priceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "price",
		Name:      "requests_total",
		Help:      "Count of price API requests.",
	}, []string{"status"})
	priceRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "price",
		Name:      "request_duration_seconds",
		Help:      "Duration of price API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Delivery tracks per-message delivery outcomes.
type Delivery struct{}

// NewDelivery constructs a Delivery metrics collector.
func NewDelivery() *Delivery {
	return &Delivery{}
}

// Observe records the outcome of one message.
func (m Delivery) Observe(err error, started time.Time) {
	s := status(err)
	deliveryMessagesTotal.WithLabelValues(s).Inc()
	deliveryMessageDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

// Price tracks price API requests.
type Price struct{}

// NewPrice constructs a Price metrics collector.
func NewPrice() *Price {
	return &Price{}
}

// Observe records the outcome of one price request.
func (m Price) Observe(err error, started time.Time) {
	s := status(err)
	priceRequestsTotal.WithLabelValues(s).Inc()
	priceRequestDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}
