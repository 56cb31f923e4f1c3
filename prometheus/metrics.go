package prometheus

import (
	"errors"
	"fmt"

	"github.com/abczzz13/ipware"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics is a Prometheus-backed implementation of ipware.Metrics.
type Metrics struct {
	resolutionTotal *prom.CounterVec
	securityEvents  *prom.CounterVec
}

// WithMetrics returns an ipware option that installs Prometheus-backed
// metrics using prom.DefaultRegisterer.
func WithMetrics() ipware.Option {
	return withMetricsFactory(New)
}

// WithRegisterer returns an ipware option that installs Prometheus-backed
// metrics using the provided registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used.
func WithRegisterer(registerer prom.Registerer) ipware.Option {
	return withMetricsFactory(func() (*Metrics, error) {
		return NewWithRegisterer(registerer)
	})
}

// withMetricsFactory adapts a Metrics constructor into an ipware.Option.
func withMetricsFactory(factory func() (*Metrics, error)) ipware.Option {
	return ipware.WithMetricsFactory(func() (ipware.Metrics, error) {
		return factory()
	})
}

// New creates Metrics and registers its collectors on
// prom.DefaultRegisterer.
func New() (*Metrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates Metrics and registers its collectors on the
// given registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	resolutionTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "ip_resolution_total",
			Help: "Total number of client IP resolution attempts by header and result (success, invalid).",
		},
		[]string{"header", "result"},
	)
	securityEventsCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "ip_resolution_security_events_total",
			Help: "Security-related events during client IP resolution, labeled by event.",
		},
		[]string{"event"},
	)

	resolutionTotal, err := registerCounterVec(registerer, resolutionTotalCollector, "ip_resolution_total")
	if err != nil {
		return nil, err
	}

	securityEvents, err := registerCounterVec(registerer, securityEventsCollector, "ip_resolution_security_events_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		resolutionTotal: resolutionTotal,
		securityEvents:  securityEvents,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordResolutionSuccess increments ip_resolution_total with
// result="success" for the provided header.
func (m *Metrics) RecordResolutionSuccess(header string) {
	m.resolutionTotal.WithLabelValues(header, "success").Inc()
}

// RecordResolutionFailure increments ip_resolution_total with
// result="invalid" for the provided header.
func (m *Metrics) RecordResolutionFailure(header string) {
	m.resolutionTotal.WithLabelValues(header, "invalid").Inc()
}

// RecordSecurityEvent increments ip_resolution_security_events_total for the
// provided event label.
func (m *Metrics) RecordSecurityEvent(event string) {
	m.securityEvents.WithLabelValues(event).Inc()
}
