package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, *.ewaste.co.tz ,")

	cfg := Load()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://app.example.com", "*.ewaste.co.tz"}, cfg.AllowedOrigins)
}

func TestOriginAllowed(t *testing.T) {
	cfg := Config{AllowedOrigins: []string{"https://app.example.com", "*.ewaste.co.tz"}}

	assert.True(t, cfg.OriginAllowed("https://app.example.com"))
	assert.False(t, cfg.OriginAllowed("http://app.example.com"))
	assert.False(t, cfg.OriginAllowed("https://evil.example.com"))

	assert.True(t, cfg.OriginAllowed("https://portal.ewaste.co.tz"))
	assert.True(t, cfg.OriginAllowed("https://ewaste.co.tz"))
	assert.False(t, cfg.OriginAllowed("https://ewaste.co.tz.evil.com"))
	assert.False(t, cfg.OriginAllowed(""))
}
