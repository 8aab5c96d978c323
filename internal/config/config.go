package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// HTTP
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Observability (optional)
	SentryDSN string

	// Client (goals CLI)
	APIURL          string
	UserID          int64
	HTTPTimeout     time.Duration // 0 means no timeout
	SaveConcurrency int           // 0 means unlimited
	WriteRate       float64       // writes per second, 0 means unpaced
	WriteBurst      int
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		// Application
		AppName: envString("APP_NAME", "fyza"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8000"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/fyza.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		// HTTP
		CORSOrigins:    envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Client
		APIURL:          envString("FYZA_API_URL", "http://localhost:8000"),
		UserID:          int64(envInt("FYZA_USER_ID", 1)),
		HTTPTimeout:     envDuration("FYZA_HTTP_TIMEOUT", 0),
		SaveConcurrency: envInt("FYZA_SAVE_CONCURRENCY", 4),
		// Stays under the server's default RATE_LIMIT_RPS and RATE_LIMIT_BURST
		WriteRate:  envFloat("FYZA_WRITE_RATE", 4),
		WriteBurst: envInt("FYZA_WRITE_BURST", 10),
	}
}

// Validate reports every invalid server setting at once
func (c *Config) Validate() error {
	var problems []string

	switch c.AppEnv {
	case "development", "production", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid APP_ENV %q: must be development, production or test", c.AppEnv))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q: must be a number between 1 and 65535", c.Port))
	}

	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER %q: must be sqlite or pgx", c.DBDriver))
	}

	if c.DBConnection == "" {
		problems = append(problems, "DB_CONNECTION cannot be empty")
	}

	if c.RateLimitRPS <= 0 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_RPS %v: must be positive", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_BURST %d: must be at least 1", c.RateLimitBurst))
	}

	return joinProblems(problems)
}

// ValidateClient reports every invalid goals CLI setting at once
func (c *Config) ValidateClient() error {
	var problems []string

	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid FYZA_API_URL %q: must be an http(s) URL", c.APIURL))
	}
	if c.UserID < 1 {
		problems = append(problems, fmt.Sprintf("invalid FYZA_USER_ID %d: must be positive", c.UserID))
	}
	if c.HTTPTimeout < 0 {
		problems = append(problems, "FYZA_HTTP_TIMEOUT cannot be negative")
	}
	if c.SaveConcurrency < 0 {
		problems = append(problems, "FYZA_SAVE_CONCURRENCY cannot be negative")
	}
	if c.WriteRate < 0 {
		problems = append(problems, "FYZA_WRITE_RATE cannot be negative")
	}
	if c.WriteRate > 0 && c.WriteBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid FYZA_WRITE_BURST %d: must be at least 1", c.WriteBurst))
	}

	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("config invalid float, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping blanks
func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
