package ipware

import (
	"net/http"
	"net/textproto"
	"strings"
)

// HeaderSource provides access to one request's headers by name.
//
// Lookup is called with names in canonical MIME format (for example
// "X-Forwarded-For") and reports whether the header is present. When a
// request carried multiple headers of the same name, the source is expected
// to return them merged into a single comma-separated value, matching how
// proxies accumulate forwarding chains.
//
// Implementations perform no parsing; the only failure mode is absence.
type HeaderSource interface {
	Lookup(name string) (value string, ok bool)
}

// HeaderSourceFunc adapts a function to the HeaderSource interface.
type HeaderSourceFunc func(name string) (string, bool)

// Lookup implements HeaderSource.
func (f HeaderSourceFunc) Lookup(name string) (string, bool) {
	if f == nil {
		return "", false
	}

	return f(name)
}

// HTTPHeaderSource adapts an http.Header to the HeaderSource interface.
//
// Multiple header lines with the same name are merged with ", " so a split
// X-Forwarded-For chain parses the same as a single line.
func HTTPHeaderSource(header http.Header) HeaderSource {
	return httpHeaderSource{header: header}
}

type httpHeaderSource struct {
	header http.Header
}

func (s httpHeaderSource) Lookup(name string) (string, bool) {
	values := s.header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	if len(values) == 1 {
		return values[0], true
	}

	return strings.Join(values, ", "), true
}

// MapHeaderSource adapts a plain header map to the HeaderSource interface.
//
// Keys are canonicalized once at construction, so lookups stay
// case-insensitive without per-call normalization.
func MapHeaderSource(values map[string]string) HeaderSource {
	canonical := make(map[string]string, len(values))
	for name, value := range values {
		canonical[canonicalHeaderKey(name)] = value
	}

	return mapHeaderSource{values: canonical}
}

type mapHeaderSource struct {
	values map[string]string
}

func (s mapHeaderSource) Lookup(name string) (string, bool) {
	value, ok := s.values[canonicalHeaderKey(name)]
	return value, ok
}

func canonicalHeaderKey(name string) string {
	return textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
}
