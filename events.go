package ipware

const (
	securityEventProxyCountMismatch = "proxy_count_mismatch"
	securityEventUntrustedProxy     = "untrusted_proxy"
	securityEventInvalidToken       = "invalid_token"
	securityEventMalformedForwarded = "malformed_forwarded"
	securityEventNonGlobalClient    = "non_global_client"
)
