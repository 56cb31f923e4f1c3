// Package ipware resolves the originating client IP address of an HTTP
// request that may have traversed reverse proxies or load balancers, and
// reports whether the resolution happened over an operator-trusted path.
//
// # Features
//
//   - Ordered header precedence scanning with a widely-deployed default list
//     (X-Forwarded-For, X-Real-IP, CF-Connecting-IP, and others)
//   - Leftmost or rightmost client selection from forwarding chains
//   - Trust validation by expected proxy count and/or trusted proxy prefixes
//   - Public-preferred selection: a private address in a higher-precedence
//     header never shadows a public address in a lower one
//   - Framework-agnostic header access through the HeaderSource interface
//   - Optional observability with context-aware logging and pluggable metrics
//   - Type-safe using modern Go netip.Addr
//
// # Basic Usage
//
// Resolution with default settings:
//
//	resolver, err := ipware.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := resolver.ResolveRequest(req)
//	if result.Found() {
//	    fmt.Printf("Client IP: %s (trusted=%v)\n", result.Addr, result.Trusted)
//	}
//
// # Trust Validation
//
// By default resolution is best-effort and the result is never marked
// trusted. Configuring an expected proxy count and/or trusted proxy prefixes
// enables trust validation:
//
//	resolver, err := ipware.New(
//	    ipware.ProxyCount(1),
//	    ipware.TrustedProxyPrefixes("10.0.", "10.1."),
//	)
//
// With ProxyCount(n), a chain must carry at least n+1 addresses (exactly n+1
// with the per-call Strict option). With TrustedProxyPrefixes, every proxy
// hop in the chain must match one of the prefixes by plain string prefix on
// its canonical address text. A chain failing either check is skipped as if
// the header were absent; resolution falls through to the next header in the
// precedence list.
//
// # Custom Precedence
//
// Provider-specific headers can be prioritized:
//
//	resolver, _ := ipware.New(
//	    ipware.Precedence("CF-Connecting-IP", "X-Forwarded-For"),
//	    ipware.ProxyCount(1),
//	)
//
// Presets are available for common edge setups:
//
//	resolver, _ := ipware.New(ipware.PresetCloudflare())
//
// # Failure Policy
//
// Per-call failures never surface as errors: a missing header, an unparsable
// token, or a failed trust check all degrade to "no candidate from this
// header" and, globally, to the zero Result. Only construction reports
// errors, for configurations that can never be valid (empty precedence,
// duplicate header names, negative proxy count).
//
// # Observability
//
// Add logging and metrics for production monitoring:
// (Prometheus adapter package: github.com/abczzz13/ipware/prometheus)
// The logger receives the context passed to Resolve, allowing trace/span IDs
// to flow through.
//
//	import ipwareprom "github.com/abczzz13/ipware/prometheus"
//
//	resolver, err := ipware.New(
//	    ipware.ProxyCount(1),
//	    ipware.WithLogger(slog.Default()),
//	    ipwareprom.WithMetrics(),
//	)
//
// # Thread Safety
//
// Resolver instances are immutable after construction and safe for
// concurrent use. They are typically created once at application startup and
// reused across all requests.
package ipware
