package ipware

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver resolves client IP information from request headers.
//
// Resolver instances are immutable after construction and safe for
// concurrent reuse.
type Resolver struct {
	config *config
}

// Result is the outcome of one resolution.
//
// The zero Result means no header produced a usable address.
type Result struct {
	// Addr is the resolved client address, or the zero netip.Addr when
	// resolution failed.
	Addr netip.Addr

	// Trusted reports whether the winning chain passed configured trust
	// validation. It is always false when no proxy count or trusted proxy
	// prefixes are configured.
	Trusted bool

	// Header is the canonical name of the header that produced Addr, empty
	// when resolution failed.
	Header string
}

// Found reports whether resolution produced an address.
func (r Result) Found() bool {
	return r.Addr.IsValid()
}

// Class returns the classification of the resolved address.
func (r Result) Class() Class {
	return Classify(r.Addr)
}

// New creates a Resolver from one or more Option builders.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Resolver{config: cfg}, nil
}

// Resolve scans the configured header precedence list and returns the client
// address candidate, preferring publicly routable addresses across headers.
//
// Every failure mode degrades to the zero Result: a missing header, a chain
// with no parsable addresses, and a failed trust check all fall through to
// the next header, and an exhausted precedence list yields Result{}. Each
// call is independent and side-effect free.
func (r *Resolver) Resolve(ctx context.Context, headers HeaderSource, opts ...ResolveOption) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if isNilInterface(headers) {
		return Result{}
	}

	var settings resolveSettings
	for _, opt := range opts {
		opt(&settings)
	}

	var fallback Result

	for _, header := range r.config.precedence {
		raw, ok := headers.Lookup(header)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		chain := r.chainFor(ctx, header, raw)
		if len(chain) == 0 {
			r.config.metrics.RecordResolutionFailure(header)
			continue
		}

		candidate, ok := r.evaluateChain(ctx, header, chain, settings.strict)
		if !ok {
			r.config.metrics.RecordResolutionFailure(header)
			continue
		}

		// A global candidate can never be displaced by a lower-precedence
		// header, so the scan stops here.
		if IsGlobal(candidate.Addr) {
			r.config.metrics.RecordResolutionSuccess(header)
			return candidate
		}

		if !fallback.Found() {
			fallback = candidate
		}
	}

	if fallback.Found() {
		r.config.metrics.RecordResolutionSuccess(fallback.Header)
		r.config.logger.WarnContext(ctx, "resolved client address is not globally routable",
			"event", securityEventNonGlobalClient,
			"header", fallback.Header,
			"addr", fallback.Addr.String(),
			"class", Classify(fallback.Addr).String(),
		)
		return fallback
	}

	return Result{}
}

// ResolveRequest resolves the client address for an http.Request.
//
// The request context flows to the configured logger.
func (r *Resolver) ResolveRequest(req *http.Request, opts ...ResolveOption) Result {
	if req == nil {
		return Result{}
	}

	return r.Resolve(req.Context(), HTTPHeaderSource(req.Header), opts...)
}

// ResolveWithOptions is a one-shot convenience helper.
//
// It constructs a temporary resolver from opts and resolves from headers.
func ResolveWithOptions(ctx context.Context, headers HeaderSource, opts ...Option) (Result, error) {
	resolver, err := New(opts...)
	if err != nil {
		return Result{}, err
	}

	return resolver.Resolve(ctx, headers), nil
}

// ResolveRequestWithOptions is a one-shot convenience helper.
//
// It constructs a temporary resolver from opts and resolves for r.
func ResolveRequestWithOptions(r *http.Request, opts ...Option) (Result, error) {
	resolver, err := New(opts...)
	if err != nil {
		return Result{}, err
	}

	return resolver.ResolveRequest(r), nil
}
