package ipware

// PresetCloudflare configures resolution for apps behind Cloudflare.
//
// CF-Connecting-IP is set by the edge for every request and takes priority
// over the accumulated X-Forwarded-For chain.
func PresetCloudflare() Option {
	return Precedence("CF-Connecting-IP", "X-Forwarded-For")
}

// PresetFastly configures resolution for apps behind Fastly or Firebase
// Hosting.
func PresetFastly() Option {
	return Precedence("Fastly-Client-IP", "X-Forwarded-For")
}

// PresetNginxRealIP configures resolution for apps behind nginx with
// proxy_set_header X-Real-IP.
func PresetNginxRealIP() Option {
	return Precedence("X-Real-IP", "X-Forwarded-For")
}

// PresetSingleProxy configures resolution for the common one-hop reverse
// proxy topology.
//
// It expects exactly one proxy between client and server and marks results
// trusted when the chain matches.
func PresetSingleProxy() Option {
	return func(c *config) error {
		return applyOptions(c,
			Precedence("X-Forwarded-For", "X-Real-IP"),
			ProxyCount(1),
		)
	}
}
