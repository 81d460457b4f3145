package ratelimit

import "strings"

// unlimited marks routes that are never limited.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the limit for a request, or nil when the default applies. An exact
// path match wins over a prefix match; GET /health is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && path == "/health" {
		u := unlimited
		return &u
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
