package configs

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

func TestGetters(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "forty")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_DUR", "1500ms")
	t.Setenv("X_BLANK", "  ")

	assert.Equal(t, 42, GetEnvInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvInt("X_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("X_MISSING", 7))
	assert.True(t, GetEnvBool("X_BOOL", false))
	assert.Equal(t, 1500*time.Millisecond, GetEnvDuration("X_DUR", time.Second))
	assert.Equal(t, "fallback", GetEnv("X_BLANK", "fallback"))
	assert.Equal(t, "", GetEnv("X_MISSING"))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SCHOOL_TIMEZONE", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("EXAM_REMINDER_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", cfg.SchoolTimezone)
	assert.Equal(t, "0 7 * * *", cfg.ReminderCron)
	assert.Equal(t, defaultCORSOrigins, cfg.CORSAllowOrigins)
	assert.NotNil(t, cfg.Location())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("APP_BASE_URL", "https://examku.test/")
	t.Setenv("STATS_CACHE_SIZE", "16")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "https://examku.test", cfg.AppBaseURL)
	assert.Equal(t, 16, cfg.StatsCacheSize)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("SCHOOL_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SCHOOL_TIMEZONE", "UTC")
	t.Setenv("EXAM_REMINDER_LEAD_DAYS", "-1")
	_, err = Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := DBConfig{User: "app", Password: "p@ss", Host: "db", Port: "5432", Name: "examku", SSLMode: "disable", StatementTimeout: 3 * time.Second}

	u, err := url.Parse(d.DSN())
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "-c statement_timeout=3000", u.Query().Get("options"))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud", "json")
	assert.Error(t, err)
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	base := NewGormLogger(zap.NewNop())
	silent := base.LogMode(gormLogger.Silent)

	assert.Equal(t, gormLogger.Warn, base.(*GormLogger).LogLevel)
	assert.Equal(t, gormLogger.Silent, silent.(*GormLogger).LogLevel)
}
