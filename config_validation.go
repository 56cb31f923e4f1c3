package ipware

import (
	"fmt"
	"reflect"
	"strings"
)

func (c *config) validate() error {
	if len(c.precedence) == 0 {
		return fmt.Errorf("at least one header required in precedence list")
	}

	seen := make(map[string]struct{}, len(c.precedence))
	for _, name := range c.precedence {
		if name == "" {
			return fmt.Errorf("header names cannot be empty")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate header %q in precedence list", name)
		}
		seen[name] = struct{}{}
	}

	if c.hasProxyCount && c.proxyCount < 0 {
		return fmt.Errorf("proxy count must be >= 0, got %d", c.proxyCount)
	}

	for _, prefix := range c.proxyList {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("trusted proxy prefixes cannot be empty")
		}
	}

	if !c.chainSelection.valid() {
		return fmt.Errorf("invalid chain selection %d (must be LeftmostIP=1 or RightmostIP=2)", c.chainSelection)
	}

	if isNilLogger(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if isNilMetrics(c.metrics) {
		return fmt.Errorf("metrics cannot be nil")
	}
	return nil
}

func isNilLogger(logger Logger) bool {
	return isNilInterface(logger)
}

func isNilMetrics(metrics Metrics) bool {
	return isNilInterface(metrics)
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
