package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecordProviderCall(t *testing.T) {
	Reset()
	defer Reset()

	RecordProviderCall(100*time.Millisecond, nil)
	RecordProviderCall(300*time.Millisecond, errors.New("boom"))

	m := Get()
	if m.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", m.Calls())
	}
	if m.Errors() != 1 {
		t.Errorf("expected 1 error, got %d", m.Errors())
	}
	if got := m.AverageLatency(); got != 200 {
		t.Errorf("expected 200ms average latency, got %v", got)
	}
	if got := m.ErrorRate(); got != 50 {
		t.Errorf("expected 50%% error rate, got %v", got)
	}
}

func TestZeroCallsHaveZeroRates(t *testing.T) {
	Reset()

	m := Get()
	if m.AverageLatency() != 0 {
		t.Errorf("expected 0 latency with no calls, got %v", m.AverageLatency())
	}
	if m.ErrorRate() != 0 {
		t.Errorf("expected 0 error rate with no calls, got %v", m.ErrorRate())
	}
}
