package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one route. A Path ending in "/" also covers everything below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // bucket capacity; Limit when 0
}

// Defaults used when no environment override is set.
const (
	DefaultLimit           = 1000
	DefaultWindow          = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// LoadConfig reads RATE_LIMIT_* environment variables.
//
//	RATE_LIMIT_ENABLED           true|false (default true)
//	RATE_LIMIT_DEFAULT_LIMIT     requests per window for routes without their own limit
//	RATE_LIMIT_DEFAULT_WINDOW    Go duration, e.g. 1m
//	RATE_LIMIT_CLEANUP_INTERVAL  how often idle buckets are dropped
//	RATE_LIMIT_WHITELIST         comma-separated client IPs never limited
//	RATE_LIMIT_BLACKLIST         comma-separated client IPs always refused
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval, time.ParseDuration),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Embedding calls spend API quota and
// are the strictest; analysis writes come next. Everything else uses the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/similarity", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/analyses", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/analyses/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/analyses/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// envOr parses key with parse, falling back to def when unset or malformed.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet turns "a, b,,c" into {a, b, c}.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
