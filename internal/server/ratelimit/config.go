package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes the rate limit environment variables.
const EnvPrefix = "PORTFOLIO_RATE_LIMIT_"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path, or prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// settings are the environment-tunable parts of Config.
type settings struct {
	Enabled         bool          `env:"ENABLED"          envDefault:"true"`
	DefaultLimit    int           `env:"DEFAULT_LIMIT"    envDefault:"600"`
	DefaultWindow   time.Duration `env:"DEFAULT_WINDOW"   envDefault:"1m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"WHITELIST"        envSeparator:","`
	Blacklist       []string      `env:"BLACKLIST"        envSeparator:","`
}

// LoadConfig reads PORTFOLIO_RATE_LIMIT_* variables and combines them with
// the given endpoint limits.
func LoadConfig(endpoints []EndpointConfig) (*Config, error) {
	var s settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse rate limit environment: %w", err)
	}

	if !s.Enabled {
		return &Config{Enabled: false}, nil
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: endpoints,
	}, nil
}

// ProtectedEndpoints returns the limits for the contact form and the CV
// download: perSecond requests per second on average, with the given burst.
func ProtectedEndpoints(perSecond float64, burst int) []EndpointConfig {
	limit := int(perSecond * 60)
	if limit < 1 {
		limit = 1
	}
	return []EndpointConfig{
		{Path: "/contact", Method: "POST", Limit: limit, Window: time.Minute, Burst: burst},
		{Path: "/contact/stream", Method: "POST", Limit: limit, Window: time.Minute, Burst: burst},
		{Path: "/cv/", Method: "GET", Limit: limit, Window: time.Minute, Burst: burst},
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			result[item] = true
		}
	}
	return result
}
