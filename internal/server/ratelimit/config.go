package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier is a request budget shared by every route its pattern matches.
// Pattern segments are literal, "*" for exactly one segment, or a final
// "**" for any remainder.
type Tier struct {
	Name    string
	Method  string
	Pattern string
	Limit   int // requests per Window
	Window  time.Duration
	Burst   int // defaults to Limit when 0
}

// DefaultTiers lists the editor's budgets, most specific first.
func DefaultTiers() []Tier {
	return []Tier{
		// a PDF export starts a browser
		{Name: "pdf", Method: "GET", Pattern: "/export/*/pdf", Limit: 20, Window: time.Minute, Burst: 3},
		{Name: "export", Method: "GET", Pattern: "/export/**", Limit: 120, Window: time.Minute, Burst: 20},
		{Name: "print", Method: "GET", Pattern: "/print/*", Limit: 120, Window: time.Minute, Burst: 20},

		// buffer edits arrive per keystroke
		{Name: "buffer", Method: "PATCH", Pattern: "/sections/*/buffer", Limit: 1200, Window: time.Minute, Burst: 100},
		{Name: "section", Method: "POST", Pattern: "/sections/**", Limit: 300, Window: time.Minute, Burst: 30},
		{Name: "section", Method: "DELETE", Pattern: "/sections/**", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup func(string) (string, bool)) *Config {
	env := envReader(lookup)
	if !env.getBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.getInt("RATE_LIMIT_DEFAULT_LIMIT", 1200),
		DefaultWindow:   env.getDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.getDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allowlist:       env.getSet("RATE_LIMIT_ALLOWLIST"),
		Denylist:        env.getSet("RATE_LIMIT_DENYLIST"),
		Tiers:           DefaultTiers(),
	}
}

// envReader parses settings, falling back to the default on a missing or
// malformed value.
type envReader func(string) (string, bool)

func (e envReader) value(key string) (string, bool) {
	v, ok := e(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e envReader) getInt(key string, def int) int {
	if v, ok := e.value(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (e envReader) getBool(key string, def bool) bool {
	if v, ok := e.value(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (e envReader) getDuration(key string, def time.Duration) time.Duration {
	if v, ok := e.value(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// getSet splits a comma-separated list of client addresses.
func (e envReader) getSet(key string) map[string]bool {
	out := make(map[string]bool)
	v, _ := e.value(key)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
