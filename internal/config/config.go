package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	RateLimitPerMinute     int
	RateLimitBurst         int
	SedeRateLimitPerMinute int
	SedeRateLimitBurst     int

	NotifInterval      time.Duration
	NotifBatchSize     int
	NotifMaxAttempts   int
	NotifEmailProvider string
	NotifPushProvider  string

	CORSOrigins []string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DB_DSN"),

		RateLimitPerMinute:     readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:         readInt("RATE_LIMIT_BURST", 30),
		SedeRateLimitPerMinute: readInt("SEDE_RATE_LIMIT_PER_MIN", 600),
		SedeRateLimitBurst:     readInt("SEDE_RATE_LIMIT_BURST", 120),

		NotifInterval:      readDurationSeconds("NOTIF_SCAN_INTERVAL_SECONDS", 15),
		NotifBatchSize:     readInt("NOTIF_BATCH_SIZE", 50),
		NotifMaxAttempts:   readInt("NOTIF_MAX_ATTEMPTS", 3),
		NotifEmailProvider: os.Getenv("NOTIF_EMAIL_PROVIDER"),
		NotifPushProvider:  os.Getenv("NOTIF_PUSH_PROVIDER"),

		CORSOrigins: readList("CORS_ORIGINS", []string{"*"}),
	}
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
