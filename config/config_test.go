package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_TLS", "true")
	t.Setenv("GEMINI_MAX_RETRIES", "5")
	t.Setenv("SALT_ROUND", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.DBTLS)
	assert.Equal(t, 5, cfg.GeminiMaxRetries)
	assert.Equal(t, 10, cfg.SaltRound)
}
