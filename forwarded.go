package ipware

import (
	"fmt"
	"strings"
)

// parseForwardedChain extracts the for= chain from an RFC 7239 Forwarded
// header value.
//
// Elements are processed in wire order; elements without a for parameter are
// skipped. Any parse failure discards the whole value, consistent with the
// policy that a header failing to parse contributes no candidate.
func parseForwardedChain(value string) ([]string, error) {
	chain := make([]string, 0, typicalChainCapacity)

	err := scanQuotedSegments(value, ',', func(element string) error {
		node, ok, err := forwardedForNode(element)
		if err != nil {
			return err
		}
		if ok {
			chain = append(chain, node)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return chain, nil
}

// forwardedForNode parses a single Forwarded element and returns its for
// parameter value when present.
//
// Arbitrary additional parameters are allowed, parameter names are matched
// case-insensitively, and a duplicate for parameter in one element is
// rejected.
func forwardedForNode(element string) (node string, ok bool, err error) {
	err = scanQuotedSegments(element, ';', func(param string) error {
		eq := strings.IndexByte(param, '=')
		if eq <= 0 {
			return fmt.Errorf("invalid forwarded parameter %q", param)
		}

		key := strings.TrimSpace(param[:eq])
		value := strings.TrimSpace(param[eq+1:])
		if key == "" || value == "" {
			return fmt.Errorf("empty forwarded parameter in %q", param)
		}

		if !strings.EqualFold(key, "for") {
			return nil
		}

		if ok {
			return fmt.Errorf("duplicate for parameter in element %q", element)
		}

		if value[0] == '"' {
			unquoted, unquoteErr := unquoteForwarded(value)
			if unquoteErr != nil {
				return unquoteErr
			}
			value = strings.TrimSpace(unquoted)
		}

		if value == "" {
			return fmt.Errorf("empty for value in element %q", element)
		}

		node = value
		ok = true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return node, ok, nil
}

// scanQuotedSegments splits value by delimiter while respecting quoted
// segments and escape sequences inside quoted strings.
func scanQuotedSegments(value string, delimiter byte, onSegment func(string) error) error {
	start := 0
	inQuotes := false
	escaped := false

	for i := 0; i <= len(value); i++ {
		if i == len(value) {
			if inQuotes {
				return fmt.Errorf("unterminated quoted string in %q", value)
			}
			if escaped {
				return fmt.Errorf("unterminated escape in %q", value)
			}
		} else {
			ch := value[i]

			if escaped {
				escaped = false
				continue
			}

			if ch == '\\' && inQuotes {
				escaped = true
				continue
			}

			if ch == '"' {
				inQuotes = !inQuotes
				continue
			}

			if ch != delimiter || inQuotes {
				continue
			}
		}

		segment := strings.TrimSpace(value[start:i])
		if segment != "" {
			if err := onSegment(segment); err != nil {
				return err
			}
		}

		start = i + 1
	}

	return nil
}

// unquoteForwarded removes surrounding quotes from a Forwarded quoted string
// and resolves backslash escapes.
func unquoteForwarded(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", fmt.Errorf("invalid quoted string %q", value)
	}

	var b strings.Builder
	b.Grow(len(value) - 2)
	escaped := false

	for i := 1; i < len(value)-1; i++ {
		ch := value[i]

		if escaped {
			b.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if ch == '"' {
			return "", fmt.Errorf("unexpected quote in %q", value)
		}

		b.WriteByte(ch)
	}

	if escaped {
		return "", fmt.Errorf("unterminated escape in %q", value)
	}

	return b.String(), nil
}
