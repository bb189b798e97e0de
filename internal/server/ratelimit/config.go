package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the bucket shape for one route. Path matches by prefix when it ends in "/".
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // 0 means Limit
}

// DefaultConfig allows 1000 requests a minute per client on routes without their own entry.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig applies the RATE_LIMIT_* environment variables to DefaultConfig.
// Unparsable values keep the default.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = fromEnv("RATE_LIMIT_ENABLED", strconv.ParseBool, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	cfg.DefaultLimit = fromEnv("RATE_LIMIT_DEFAULT_LIMIT", strconv.Atoi, cfg.DefaultLimit)
	cfg.DefaultWindow = fromEnv("RATE_LIMIT_DEFAULT_WINDOW", time.ParseDuration, cfg.DefaultWindow)
	cfg.CleanupInterval = fromEnv("RATE_LIMIT_CLEANUP_INTERVAL", time.ParseDuration, cfg.CleanupInterval)
	cfg.Whitelist = ipSet(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = ipSet(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs limits the routes that call out to job search, the model or the database.
// /domain/detect falls back to the default limit; /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze-skills", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/roadmap-for-job", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/skills/extract", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/certifications/recommend", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/jobs/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func fromEnv[T any](key string, parse func(string) (T, error), def T) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
