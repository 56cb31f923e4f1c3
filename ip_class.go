package ipware

import (
	"fmt"
	"net/netip"
)

// Class categorizes a resolved address by standard IP-range rules.
type Class int

const (
	// ClassGlobal marks a publicly routable address.
	ClassGlobal Class = iota + 1
	// ClassPrivate marks an RFC 1918 / ULA address.
	ClassPrivate
	// ClassLoopback marks a loopback address.
	ClassLoopback
	// ClassMulticast marks a multicast address.
	ClassMulticast
	// ClassOther marks link-local, unspecified, reserved, and invalid
	// addresses.
	ClassOther
)

// String returns the canonical text representation of c.
func (c Class) String() string {
	switch c {
	case ClassGlobal:
		return "global"
	case ClassPrivate:
		return "private"
	case ClassLoopback:
		return "loopback"
	case ClassMulticast:
		return "multicast"
	case ClassOther:
		return "other"
	default:
		return "unknown"
	}
}

// Classify returns the Class of addr. Invalid addresses classify as
// ClassOther.
func Classify(addr netip.Addr) Class {
	if !addr.IsValid() {
		return ClassOther
	}

	addr = normalizeIP(addr)

	switch {
	case addr.IsLoopback():
		return ClassLoopback
	case addr.IsMulticast():
		return ClassMulticast
	case addr.IsPrivate():
		return ClassPrivate
	case IsGlobal(addr):
		return ClassGlobal
	default:
		return ClassOther
	}
}

// IsGlobal reports whether addr is publicly routable: valid and outside
// private, loopback, link-local, multicast, unspecified, and reserved
// special-use ranges.
func IsGlobal(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}

	addr = normalizeIP(addr)

	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsMulticast() || addr.IsUnspecified() {
		return false
	}

	return !isReservedAddr(addr)
}

var (
	reservedIPv4Prefixes = []netip.Prefix{
		mustParsePrefix("0.0.0.0/8"),
		mustParsePrefix("100.64.0.0/10"),
		mustParsePrefix("192.0.0.0/24"),
		mustParsePrefix("192.0.2.0/24"),
		mustParsePrefix("198.18.0.0/15"),
		mustParsePrefix("198.51.100.0/24"),
		mustParsePrefix("203.0.113.0/24"),
		mustParsePrefix("240.0.0.0/4"),
	}

	reservedIPv6Prefixes = []netip.Prefix{
		mustParsePrefix("64:ff9b::/96"),
		mustParsePrefix("64:ff9b:1::/48"),
		mustParsePrefix("100::/64"),
		mustParsePrefix("2001:2::/48"),
		mustParsePrefix("2001:db8::/32"),
		mustParsePrefix("2001:20::/28"),
	}
)

// isReservedAddr checks if an address is in a reserved or special-use range
// that is never publicly routable.
func isReservedAddr(addr netip.Addr) bool {
	prefixes := reservedIPv6Prefixes
	if addr.Is4() {
		prefixes = reservedIPv4Prefixes
	}

	for _, prefix := range prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

func mustParsePrefix(cidr string) netip.Prefix {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in CIDR %q: %v", cidr, err))
	}
	return prefix
}
