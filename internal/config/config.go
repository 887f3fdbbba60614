package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port          string
	ResendAPIKey  string
	ResendBaseURL string
	MailFrom      string
	MailTo        string
	SiteURL       string
	RedisURL      string
	LogLevel      string
	RateLimitLead RateLimitConfig
	SendTimeout   time.Duration
}

// DefaultSiteURL is used for links in outbound emails when SITE_URL is unset.
const DefaultSiteURL = "https://www.viasolenergia.com.br"

// Load reads configuration from environment variables and applies sane defaults.
// Missing required values are reported together so an operator can fix the
// deployment in one pass.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailTo:        os.Getenv("MAIL_TO"),
		SiteURL:       getEnv("SITE_URL", DefaultSiteURL),
		RedisURL:      os.Getenv("REDIS_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SendTimeout:   parseDuration(getEnv("SEND_TIMEOUT", "10s"), 10*time.Second),
	}

	var missing []string
	if cfg.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if cfg.MailFrom == "" {
		missing = append(missing, "MAIL_FROM")
	}
	if cfg.MailTo == "" {
		missing = append(missing, "MAIL_TO")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_LEAD", "1/15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LEAD value: %w", err)
	}
	cfg.RateLimitLead = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	interval, err := time.ParseDuration(strings.TrimSpace(parts[1]))
	if err != nil || interval <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid interval: %v", parts[1])
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
