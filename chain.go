package ipware

import (
	"context"
	"net/netip"
	"strings"
)

// typicalChainCapacity is the initial capacity used when parsing forwarding
// chains.
//
// Most deployments have short chains (around 1-5 hops). Preallocating 8
// avoids reallocations in common cases without meaningful memory overhead.
const typicalChainCapacity = 8

// headerForwarded is the canonical name of the RFC 7239 header, whose chain
// is carried in for= parameters rather than bare comma-separated addresses.
const headerForwarded = "Forwarded"

// chainFor parses one header's raw value into the ordered chain of valid
// addresses, in wire order. Unparsable tokens are dropped and do not count
// toward chain length for trust validation.
func (r *Resolver) chainFor(ctx context.Context, header, raw string) []netip.Addr {
	tokens, err := chainTokens(header, raw)
	if err != nil {
		r.config.metrics.RecordSecurityEvent(securityEventMalformedForwarded)
		r.config.logger.WarnContext(ctx, "malformed Forwarded header",
			"event", securityEventMalformedForwarded,
			"header", header,
			"error", err.Error(),
		)
		return nil
	}

	chain := make([]netip.Addr, 0, len(tokens))
	dropped := 0

	for _, token := range tokens {
		addr := parseIP(token)
		if !addr.IsValid() {
			dropped++
			continue
		}
		chain = append(chain, normalizeIP(addr))
	}

	if dropped > 0 {
		r.config.metrics.RecordSecurityEvent(securityEventInvalidToken)
		r.config.logger.WarnContext(ctx, "dropped unparsable tokens from forwarding chain",
			"event", securityEventInvalidToken,
			"header", header,
			"dropped", dropped,
		)
	}

	return chain
}

// chainTokens splits a raw header value into trimmed, non-empty tokens.
func chainTokens(header, raw string) ([]string, error) {
	if header == headerForwarded {
		return parseForwardedChain(raw)
	}

	tokens := make([]string, 0, typicalChainCapacity)
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}

	return tokens, nil
}

// evaluateChain runs trust validation on a parsed chain and selects the
// client candidate. It reports false when the chain fails validation, in
// which case the header contributes no candidate and the precedence scan
// moves on.
func (r *Resolver) evaluateChain(ctx context.Context, header string, chain []netip.Addr, strict bool) (Result, bool) {
	cfg := r.config

	clientIndex := 0
	if cfg.chainSelection == RightmostIP {
		clientIndex = len(chain) - 1
	}

	if cfg.hasProxyCount {
		// Client plus the expected proxy hops.
		required := cfg.proxyCount + 1
		if len(chain) < required || (strict && len(chain) != required) {
			r.config.metrics.RecordSecurityEvent(securityEventProxyCountMismatch)
			r.config.logger.WarnContext(ctx, "forwarding chain length does not match expected proxy count",
				"event", securityEventProxyCountMismatch,
				"header", header,
				"chain_length", len(chain),
				"expected", required,
				"strict", strict,
			)
			return Result{}, false
		}
	}

	if len(cfg.proxyList) > 0 {
		for i, addr := range chain {
			if i == clientIndex {
				continue
			}
			if !matchesProxyPrefix(addr, cfg.proxyList) {
				r.config.metrics.RecordSecurityEvent(securityEventUntrustedProxy)
				r.config.logger.WarnContext(ctx, "forwarding chain contains untrusted proxy hop",
					"event", securityEventUntrustedProxy,
					"header", header,
					"proxy", addr.String(),
				)
				return Result{}, false
			}
		}
	}

	return Result{
		Addr:    chain[clientIndex],
		Trusted: cfg.trustConfigured(),
		Header:  header,
	}, true
}

// matchesProxyPrefix reports whether the canonical text of addr starts with
// any configured prefix. Matching is textual, not subnet math.
func matchesProxyPrefix(addr netip.Addr, prefixes []string) bool {
	text := addr.String()
	for _, prefix := range prefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}

	return false
}
