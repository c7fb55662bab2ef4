// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artistry/internal/platform/config"
)

/*
TestParse_Defaults verifies the defaults applied when only required keys are set.
*/
func TestParse_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/artistry")
	t.Setenv("SECRET_KEY", "secret")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "3500", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.AllowedOrigins())
	assert.False(t, cfg.TrustProxy)
}

/*
TestParse_Overrides verifies typed parsing of every optional key.
*/
func TestParse_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/artistry")
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("EXTRA_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins())
	assert.True(t, cfg.TrustProxy)
}

/*
TestParse_Failures verifies missing secrets and a non-positive TTL are rejected.
*/
func TestParse_Failures(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db/artistry")
		t.Setenv("SECRET_KEY", "")
		_, err := config.Parse()
		assert.Error(t, err)
	})

	t.Run("zero ttl", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db/artistry")
		t.Setenv("SECRET_KEY", "secret")
		t.Setenv("TOKEN_TTL", "0s")
		_, err := config.Parse()
		assert.Error(t, err)
	})
}
