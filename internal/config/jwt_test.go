package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, testSecret, cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, DefaultJWTIssuer, cfg.Issuer)
}

func TestNewJWTConfig_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRATION_HOURS", "48")
	t.Setenv("JWT_ISSUER", "hr-tools")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.ExpirationHours)
	assert.Equal(t, "hr-tools", cfg.Issuer)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestNewJWTConfig_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"not a number", "abc", "invalid JWT_EXPIRATION_HOURS"},
		{"zero", "0", "at least 1 hour"},
		{"negative", "-5", "at least 1 hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.value)

			_, err := NewJWTConfig()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptionalJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := OptionalJWTConfig()
	assert.NoError(t, err)
	assert.Nil(t, cfg)

	t.Setenv("JWT_SECRET", testSecret)
	cfg, err = OptionalJWTConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
}
