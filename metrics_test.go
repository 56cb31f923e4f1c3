package ipware

import (
	"context"
	"testing"
)

func TestMetrics_SuccessRecordedForWinningHeader(t *testing.T) {
	metrics := newRecordingMetrics()
	resolver, err := New(WithMetrics(metrics))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	headers := MapHeaderSource(map[string]string{"X-Forwarded-For": "8.8.8.8"})
	resolver.Resolve(context.Background(), headers)

	if got := metrics.successCount("X-Forwarded-For"); got != 1 {
		t.Errorf("successes[X-Forwarded-For] = %d, want 1", got)
	}
	if got := metrics.failureCount("X-Forwarded-For"); got != 0 {
		t.Errorf("failures[X-Forwarded-For] = %d, want 0", got)
	}
}

func TestMetrics_FailureRecordedPerDiscardedHeader(t *testing.T) {
	metrics := newRecordingMetrics()
	resolver, err := New(ProxyCount(1), WithMetrics(metrics))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// XFF is too short for the configured count; X-Real-IP carries the
	// accepted chain.
	headers := MapHeaderSource(map[string]string{
		"X-Forwarded-For": "8.8.8.8",
		"X-Real-IP":       "9.9.9.9, 1.1.1.1",
	})
	resolver.Resolve(context.Background(), headers)

	if got := metrics.failureCount("X-Forwarded-For"); got != 1 {
		t.Errorf("failures[X-Forwarded-For] = %d, want 1", got)
	}
	if got := metrics.successCount("X-Real-IP"); got != 1 {
		t.Errorf("successes[X-Real-IP] = %d, want 1", got)
	}
	if got := metrics.eventCount(securityEventProxyCountMismatch); got != 1 {
		t.Errorf("events[proxy_count_mismatch] = %d, want 1", got)
	}
}

func TestMetrics_FailureRecordedForUnusableChain(t *testing.T) {
	metrics := newRecordingMetrics()
	resolver, err := New(WithMetrics(metrics))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	headers := MapHeaderSource(map[string]string{"X-Forwarded-For": "garbage"})
	resolver.Resolve(context.Background(), headers)

	if got := metrics.failureCount("X-Forwarded-For"); got != 1 {
		t.Errorf("failures[X-Forwarded-For] = %d, want 1", got)
	}
	if got := metrics.eventCount(securityEventInvalidToken); got != 1 {
		t.Errorf("events[invalid_token] = %d, want 1", got)
	}
}

func TestMetrics_AbsentHeadersRecordNothing(t *testing.T) {
	metrics := newRecordingMetrics()
	resolver, err := New(WithMetrics(metrics))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resolver.Resolve(context.Background(), MapHeaderSource(nil))

	for _, header := range DefaultPrecedence() {
		if got := metrics.failureCount(canonicalHeaderKey(header)); got != 0 {
			t.Errorf("failures[%s] = %d, want 0", header, got)
		}
	}
}

func TestMetrics_UntrustedProxyEvent(t *testing.T) {
	metrics := newRecordingMetrics()
	resolver, err := New(TrustedProxyPrefixes("10.0."), WithMetrics(metrics))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	headers := MapHeaderSource(map[string]string{"X-Forwarded-For": "8.8.8.8, 9.9.9.9"})
	resolver.Resolve(context.Background(), headers)

	if got := metrics.eventCount(securityEventUntrustedProxy); got != 1 {
		t.Errorf("events[untrusted_proxy] = %d, want 1", got)
	}
}
