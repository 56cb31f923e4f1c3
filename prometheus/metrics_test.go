package prometheus

import (
	"context"
	"fmt"
	"testing"

	"github.com/abczzz13/ipware"
	prom "github.com/prometheus/client_golang/prometheus"
)

func lookupCounterValue(registry *prom.Registry, metricName string, labels map[string]string) (float64, bool, error) {
	families, err := registry.Gather()
	if err != nil {
		return 0, false, fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		if family.GetName() != metricName {
			continue
		}

		for _, metric := range family.GetMetric() {
			matched := true
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					matched = false
					break
				}
			}
			if matched {
				return metric.GetCounter().GetValue(), true, nil
			}
		}
	}

	return 0, false, nil
}

func counterValue(t *testing.T, registry *prom.Registry, metricName string, labels map[string]string) float64 {
	t.Helper()

	value, found, err := lookupCounterValue(registry, metricName, labels)
	if err != nil {
		t.Fatalf("lookup counter %q: %v", metricName, err)
	}
	if !found {
		t.Fatalf("counter %q with labels %v not found", metricName, labels)
	}

	return value
}

func TestMetrics_RecordsResolutionOutcomes(t *testing.T) {
	registry := prom.NewRegistry()
	metrics, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("NewWithRegisterer() error = %v", err)
	}

	metrics.RecordResolutionSuccess("X-Forwarded-For")
	metrics.RecordResolutionSuccess("X-Forwarded-For")
	metrics.RecordResolutionFailure("X-Real-IP")
	metrics.RecordSecurityEvent("untrusted_proxy")

	if got := counterValue(t, registry, "ip_resolution_total", map[string]string{
		"header": "X-Forwarded-For",
		"result": "success",
	}); got != 2 {
		t.Errorf("success counter = %v, want 2", got)
	}

	if got := counterValue(t, registry, "ip_resolution_total", map[string]string{
		"header": "X-Real-IP",
		"result": "invalid",
	}); got != 1 {
		t.Errorf("invalid counter = %v, want 1", got)
	}

	if got := counterValue(t, registry, "ip_resolution_security_events_total", map[string]string{
		"event": "untrusted_proxy",
	}); got != 1 {
		t.Errorf("security event counter = %v, want 1", got)
	}
}

func TestNewWithRegisterer_ReusesRegisteredCollectors(t *testing.T) {
	registry := prom.NewRegistry()

	first, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("first NewWithRegisterer() error = %v", err)
	}

	second, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("second NewWithRegisterer() error = %v", err)
	}

	first.RecordResolutionSuccess("X-Forwarded-For")
	second.RecordResolutionSuccess("X-Forwarded-For")

	if got := counterValue(t, registry, "ip_resolution_total", map[string]string{
		"header": "X-Forwarded-For",
		"result": "success",
	}); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestNewWithRegisterer_IncompatibleCollector(t *testing.T) {
	registry := prom.NewRegistry()

	gauge := prom.NewGaugeVec(prom.GaugeOpts{
		Name: "ip_resolution_total",
		Help: "Total number of client IP resolution attempts by header and result (success, invalid).",
	}, []string{"header", "result"})
	if err := registry.Register(gauge); err != nil {
		t.Fatalf("register gauge: %v", err)
	}

	if _, err := NewWithRegisterer(registry); err == nil {
		t.Fatal("NewWithRegisterer() error = nil, want incompatible-collector error")
	}
}

func TestWithRegisterer_RecordsThroughResolver(t *testing.T) {
	registry := prom.NewRegistry()

	resolver, err := ipware.New(WithRegisterer(registry))
	if err != nil {
		t.Fatalf("ipware.New() error = %v", err)
	}

	headers := ipware.MapHeaderSource(map[string]string{
		"X-Forwarded-For": "8.8.8.8",
	})
	result := resolver.Resolve(context.Background(), headers)
	if !result.Found() {
		t.Fatal("Resolve() found no address")
	}

	if got := counterValue(t, registry, "ip_resolution_total", map[string]string{
		"header": "X-Forwarded-For",
		"result": "success",
	}); got != 1 {
		t.Errorf("success counter = %v, want 1", got)
	}
}

func TestWithRegisterer_FactoryNotInvokedOnInvalidConfig(t *testing.T) {
	registry := prom.NewRegistry()

	_, err := ipware.New(
		ipware.Precedence(),
		WithRegisterer(registry),
	)
	if err == nil {
		t.Fatal("ipware.New() error = nil, want validation error")
	}

	if families, gatherErr := registry.Gather(); gatherErr != nil {
		t.Fatalf("gather: %v", gatherErr)
	} else if len(families) != 0 {
		t.Errorf("collectors registered despite invalid config: %d families", len(families))
	}
}
