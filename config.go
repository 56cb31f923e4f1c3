package ipware

import (
	"fmt"
)

// ChainSelection controls which end of a comma-separated forwarding chain is
// treated as the original client.
type ChainSelection int

const (
	// Start at 1 to avoid zero-value confusion and make invalid selections
	// explicit.
	//
	// LeftmostIP selects the first address in the chain, the standard
	// convention where each proxy appends to the right.
	LeftmostIP ChainSelection = iota + 1
	// RightmostIP selects the last address in the chain, used by rare legacy
	// configurations that prepend.
	RightmostIP
)

// String returns the canonical text representation of s.
func (s ChainSelection) String() string {
	switch s {
	case LeftmostIP:
		return "leftmost"
	case RightmostIP:
		return "rightmost"
	default:
		return "unknown"
	}
}

// valid reports whether s is a supported chain-selection mode.
func (s ChainSelection) valid() bool {
	return s == LeftmostIP || s == RightmostIP
}

// Option configures a Resolver.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveSettings)

type resolveSettings struct {
	strict bool
}

// Strict makes the proxy-count check require the chain length to equal the
// expected count exactly instead of at least matching it.
//
// Strict has no effect on trusted-prefix validation, which always requires
// every proxy hop to match.
func Strict() ResolveOption {
	return func(s *resolveSettings) {
		s.strict = true
	}
}

// defaultPrecedence lists the headers consulted when no Precedence option is
// given, ordered by how commonly edge infrastructure populates each.
var defaultPrecedence = []string{
	"X-Forwarded-For",     // AWS ELB, nginx, most reverse proxies
	"X-Real-IP",           // nginx
	"CF-Connecting-IP",    // Cloudflare
	"True-Client-IP",      // Cloudflare Enterprise, Akamai
	"Fastly-Client-IP",    // Fastly, Firebase Hosting
	"X-Client-IP",         // Microsoft Azure
	"X-Cluster-Client-IP", // Rackspace load balancers
	"Forwarded-For",
	"Forwarded", // RFC 7239
	"Client-IP",
}

// DefaultPrecedence returns a copy of the default header precedence list.
func DefaultPrecedence() []string {
	return cloneStrings(defaultPrecedence)
}

// config holds resolver configuration state.
//
// It is mutated by Option functions during construction and becomes
// effectively immutable once New returns.
type config struct {
	precedence     []string
	chainSelection ChainSelection

	proxyCount    int
	hasProxyCount bool
	proxyList     []string

	logger  Logger
	metrics Metrics

	metricsFactory    func() (Metrics, error)
	useMetricsFactory bool
}

func defaultConfig() *config {
	return &config{
		precedence:     canonicalizeHeaderNames(defaultPrecedence),
		chainSelection: LeftmostIP,
		logger:         noopLogger{},
		metrics:        noopMetrics{},
	}
}

func applyOptions(c *config, opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	if err := applyOptions(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory {
		if cfg.metricsFactory == nil {
			return nil, fmt.Errorf("metrics factory cannot be nil")
		}
	}

	validationConfig := cfg
	if cfg.useMetricsFactory {
		validationConfig = cfg.clone()
		validationConfig.metrics = noopMetrics{}
	}

	if err := validationConfig.validate(); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory {
		metrics, err := cfg.metricsFactory()
		if err != nil {
			return nil, err
		}
		cfg.metrics = metrics

		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *config) clone() *config {
	return &config{
		precedence:        cloneStrings(c.precedence),
		chainSelection:    c.chainSelection,
		proxyCount:        c.proxyCount,
		hasProxyCount:     c.hasProxyCount,
		proxyList:         cloneStrings(c.proxyList),
		logger:            c.logger,
		metrics:           c.metrics,
		metricsFactory:    c.metricsFactory,
		useMetricsFactory: c.useMetricsFactory,
	}
}

// trustConfigured reports whether any trust validation is enabled.
func (c *config) trustConfigured() bool {
	return c.hasProxyCount || len(c.proxyList) > 0
}

func canonicalizeHeaderNames(names []string) []string {
	canonical := make([]string, len(names))
	for i, name := range names {
		canonical[i] = canonicalHeaderKey(name)
	}
	return canonical
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}

func mergeUniqueStrings(existing []string, additions ...string) []string {
	if len(existing) == 0 && len(additions) == 0 {
		return nil
	}

	merged := make([]string, 0, len(existing)+len(additions))
	seen := make(map[string]struct{}, len(existing)+len(additions))

	for _, value := range existing {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		merged = append(merged, value)
	}

	for _, value := range additions {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		merged = append(merged, value)
	}

	return merged
}
