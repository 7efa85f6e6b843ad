// Package metrics tracks AI provider call counts and latency with
// atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

type Metrics struct {
	providerCalls   int64
	providerErrors  int64
	providerLatency int64 // total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// RecordProviderCall records one call to the AI provider.
func RecordProviderCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.providerCalls, 1)
	atomic.AddInt64(&globalMetrics.providerLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.providerErrors, 1)
	}
}

// Get returns the current snapshot.
func Get() Metrics {
	return Metrics{
		providerCalls:   atomic.LoadInt64(&globalMetrics.providerCalls),
		providerErrors:  atomic.LoadInt64(&globalMetrics.providerErrors),
		providerLatency: atomic.LoadInt64(&globalMetrics.providerLatency),
	}
}

// Reset zeroes all counters (useful for testing).
func Reset() {
	atomic.StoreInt64(&globalMetrics.providerCalls, 0)
	atomic.StoreInt64(&globalMetrics.providerErrors, 0)
	atomic.StoreInt64(&globalMetrics.providerLatency, 0)
}

func (m Metrics) Calls() int64  { return m.providerCalls }
func (m Metrics) Errors() int64 { return m.providerErrors }

// AverageLatency returns the mean provider call latency in milliseconds.
func (m Metrics) AverageLatency() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	return float64(m.providerLatency) / float64(m.providerCalls) / 1e6
}

// ErrorRate returns the provider error rate as a percentage.
func (m Metrics) ErrorRate() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	return float64(m.providerErrors) / float64(m.providerCalls) * 100
}
