// Package metrics exposes Prometheus collectors for codec operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	codecOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txcodec",
		Subsystem: "codec",
		Name:      "operations_total",
		Help:      "Count of codec operations.",
	}, []string{"operation", "status"})
	codecOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txcodec",
		Subsystem: "codec",
		Name:      "operation_duration_seconds",
		Help:      "Duration of codec operations.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}, []string{"operation", "status"})
	codecBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txcodec",
		Subsystem: "codec",
		Name:      "bytes_total",
		Help:      "Count of wire bytes consumed or produced by successful codec operations.",
	}, []string{"operation"})
)

// Codec tracks metrics for encode and decode calls.
type Codec struct{}

// NewCodec constructs a Codec metrics collector.
func NewCodec() *Codec {
	return &Codec{}
}

// Observe records a single codec call outcome, its duration and the wire bytes it handled.
func (m Codec) Observe(operation string, err error, size int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if operation == "" {
		operation = "unknown"
	}

	codecOperationsTotal.WithLabelValues(operation, status).Inc()
	codecOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
	if err == nil && size > 0 {
		codecBytesTotal.WithLabelValues(operation).Add(float64(size))
	}
}
