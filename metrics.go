package ipware

// Metrics records resolution outcomes and security events observed by
// Resolver.
//
// Implementations should be safe for concurrent use, as a single Resolver
// instance is typically shared across many goroutines.
type Metrics interface {
	// RecordResolutionSuccess is called when a header yields the winning
	// client address.
	RecordResolutionSuccess(header string)
	// RecordResolutionFailure is called when a present header cannot
	// contribute a candidate (no valid addresses or failed trust checks).
	RecordResolutionFailure(header string)
	// RecordSecurityEvent is called when the resolver observes a
	// security-relevant condition.
	RecordSecurityEvent(event string)
}

// noopMetrics is the default Metrics implementation when metrics are not
// explicitly configured.
type noopMetrics struct{}

func (noopMetrics) RecordResolutionSuccess(string) {}

func (noopMetrics) RecordResolutionFailure(string) {}

func (noopMetrics) RecordSecurityEvent(string) {}
