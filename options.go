package ipware

import (
	"fmt"
	"strings"
)

// Precedence sets the ordered list of headers scanned during resolution.
//
// Header names are canonicalized to MIME form, so lookups are
// case-insensitive regardless of how the names are written here.
func Precedence(headers ...string) Option {
	headers = cloneStrings(headers)

	return func(c *config) error {
		c.precedence = canonicalizeHeaderNames(headers)
		return nil
	}
}

// WithChainSelection sets which end of a forwarding chain is treated as the
// client. The default is LeftmostIP.
func WithChainSelection(selection ChainSelection) Option {
	return func(c *config) error {
		c.chainSelection = selection
		return nil
	}
}

// ProxyCount sets the expected number of proxies between client and server
// and enables count-based trust validation.
//
// A chain must carry count+1 or more addresses to be accepted (exactly
// count+1 under the per-call Strict option).
func ProxyCount(count int) Option {
	return func(c *config) error {
		c.proxyCount = count
		c.hasProxyCount = true
		return nil
	}
}

// TrustedProxyPrefixes adds trusted proxy address prefixes and enables
// prefix-based trust validation.
//
// Matching is plain string-prefix on the canonical text of each proxy hop,
// not subnet math: "10.1." trusts 10.1.0.0 through 10.1.255.255, while
// "10.1.2" also trusts 10.1.20.0 and the rest of 10.1.2xx.
func TrustedProxyPrefixes(prefixes ...string) Option {
	prefixes = cloneStrings(prefixes)

	return func(c *config) error {
		trimmed := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			prefix = strings.TrimSpace(prefix)
			if prefix == "" {
				return fmt.Errorf("trusted proxy prefixes cannot be empty")
			}
			trimmed = append(trimmed, prefix)
		}

		c.proxyList = mergeUniqueStrings(c.proxyList, trimmed...)
		return nil
	}
}

// WithLogger sets the logger implementation used for warning events.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets a concrete metrics implementation.
//
// If previously configured, a metrics factory is disabled.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		c.metricsFactory = nil
		c.useMetricsFactory = false
		return nil
	}
}

// WithMetricsFactory configures a lazy metrics constructor.
//
// The factory is invoked only for the final winning metrics option after
// option validation succeeds.
func WithMetricsFactory(factory func() (Metrics, error)) Option {
	return func(c *config) error {
		if factory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}

		c.metricsFactory = factory
		c.useMetricsFactory = true
		return nil
	}
}
