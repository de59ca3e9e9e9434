// file: internals/configs/config.go
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env unless running on Railway. The returned string names
// the source so the caller can log it once the logger exists.
func LoadEnv() string {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		return "railway"
	}
	if err := godotenv.Load(); err != nil {
		return "system"
	}
	return ".env"
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// =======================
// APP CONFIG
// =======================

type DBConfig struct {
	User             string
	Password         string
	Host             string
	Port             string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
}

// DSN builds a postgres URL with application_name and statement_timeout set.
func (d DBConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	q.Set("application_name", "examku")
	if d.StatementTimeout > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.StatementTimeout.Milliseconds()))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

type AppConfig struct {
	Port             string
	DB               DBConfig
	AppBaseURL       string
	SchoolTimezone   string
	GradeScalesFile  string
	DefaultScale     string
	ReminderCron     string
	ReminderLeadDays int
	StatsCacheSize   int
	RequestTimeout   time.Duration
	LogLevel         string
	LogFormat        string
	CORSAllowOrigins []string
	Environment      string
}

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Load reads the process environment into an AppConfig.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port: GetEnv("PORT", "3000"),
		DB: DBConfig{
			User:             GetEnv("DB_USER"),
			Password:         GetEnv("DB_PASSWORD"),
			Host:             GetEnv("DB_HOST", "localhost"),
			Port:             GetEnv("DB_PORT", "5432"),
			Name:             GetEnv("DB_NAME"),
			SSLMode:          GetEnv("DB_SSLMODE", "require"),
			StatementTimeout: GetEnvDuration("DB_STATEMENT_TIMEOUT", 3*time.Second),
			MaxOpenConns:     GetEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     GetEnvInt("DB_MAX_IDLE_CONNS", 10),
		},
		AppBaseURL:       strings.TrimRight(GetEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		SchoolTimezone:   GetEnv("SCHOOL_TIMEZONE", "Asia/Jakarta"),
		GradeScalesFile:  GetEnv("GRADE_SCALES_FILE"),
		DefaultScale:     GetEnv("GRADE_SCALE_DEFAULT", "standard"),
		ReminderCron:     GetEnv("EXAM_REMINDER_CRON", "0 7 * * *"),
		ReminderLeadDays: GetEnvInt("EXAM_REMINDER_LEAD_DAYS", 7),
		StatsCacheSize:   GetEnvInt("STATS_CACHE_SIZE", 256),
		RequestTimeout:   GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		LogFormat:        GetEnv("LOG_FORMAT", "json"),
		CORSAllowOrigins: splitList(GetEnv("CORS_ALLOW_ORIGINS")),
		Environment:      GetEnv("RAILWAY_ENVIRONMENT", "local"),
	}
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = defaultCORSOrigins
	}

	if _, err := time.LoadLocation(cfg.SchoolTimezone); err != nil {
		return cfg, fmt.Errorf("SCHOOL_TIMEZONE %q: %w", cfg.SchoolTimezone, err)
	}
	if cfg.ReminderLeadDays < 0 {
		return cfg, fmt.Errorf("EXAM_REMINDER_LEAD_DAYS must not be negative")
	}
	if cfg.StatsCacheSize < 0 {
		return cfg, fmt.Errorf("STATS_CACHE_SIZE must not be negative")
	}
	return cfg, nil
}

// Location returns the configured school timezone, UTC when it cannot be loaded.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.SchoolTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
