// Package config loads worklog settings from WORKLOG_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// TokenGrant binds an API bearer token to an owner and capabilities.
type TokenGrant struct {
	Token        string
	Owner        string
	Capabilities []domain.Capability
}

// Config holds all runtime settings.
type Config struct {
	DBPath             string
	Owner              string
	ExpectedWorkHours  float64
	ExpectedDistanceKm float64
	WindowMonths       int
	Locale             string
	Location           *time.Location

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration

	Tokens []TokenGrant
}

// Default returns a Config with sensible defaults. The report cache is
// disabled and no API tokens are granted.
func Default() Config {
	dbPath := filepath.Join(".worklog", "worklog.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".worklog", "worklog.db")
	}
	owner := os.Getenv("USER")
	if owner == "" {
		owner = "me"
	}
	return Config{
		DBPath:             dbPath,
		Owner:              owner,
		ExpectedWorkHours:  8,
		ExpectedDistanceKm: 0,
		WindowMonths:       2,
		Locale:             "en",
		Location:           time.Local,
		HTTPAddr:           ":8080",
		LogLevel:           "info",
		LogFormat:          "console",
		ReportTTL:          10 * time.Minute,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for unset or unparsable numbers. A malformed time zone or token
// list is an error.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("WORKLOG_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WORKLOG_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("WORKLOG_EXPECTED_WORK_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.ExpectedWorkHours = f
		}
	}
	if v := os.Getenv("WORKLOG_EXPECTED_DISTANCE_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.ExpectedDistanceKm = f
		}
	}
	if v := os.Getenv("WORKLOG_STATS_WINDOW_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WindowMonths = n
		}
	}
	if v := os.Getenv("WORKLOG_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("WORKLOG_TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("WORKLOG_TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}
	if v := os.Getenv("WORKLOG_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("WORKLOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WORKLOG_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("WORKLOG_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("WORKLOG_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("WORKLOG_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("WORKLOG_REPORT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ReportTTL = d
		}
	}
	if v := os.Getenv("WORKLOG_API_TOKENS"); v != "" {
		grants, err := ParseTokens(v)
		if err != nil {
			return Config{}, fmt.Errorf("WORKLOG_API_TOKENS: %w", err)
		}
		cfg.Tokens = grants
	}

	return cfg, nil
}

// ParseTokens parses "token=owner:cap|cap,token=owner:cap".
func ParseTokens(s string) ([]TokenGrant, error) {
	var grants []TokenGrant
	seen := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		token, rest, ok := strings.Cut(item, "=")
		if !ok || token == "" {
			return nil, fmt.Errorf("grant %q: expected token=owner:capabilities", item)
		}
		owner, caps, ok := strings.Cut(rest, ":")
		if !ok || owner == "" {
			return nil, fmt.Errorf("grant for token %q: expected owner:capabilities", mask(token))
		}
		if seen[token] {
			return nil, fmt.Errorf("token %q granted twice", mask(token))
		}
		seen[token] = true

		g := TokenGrant{Token: token, Owner: owner}
		for _, c := range strings.Split(caps, "|") {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if !domain.ValidCapabilities[c] {
				return nil, fmt.Errorf("unknown capability %q", c)
			}
			g.Capabilities = append(g.Capabilities, domain.Capability(c))
		}
		grants = append(grants, g)
	}
	return grants, nil
}

// mask keeps tokens out of error messages.
func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
