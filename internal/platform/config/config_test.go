package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "test-secret")
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("TRANSFER_TIMEOUT", "10s")
	v.SetDefault("STARTING_BALANCE", "5000.00")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, 10*time.Second, cfg.TransferTimeout)
	assert.True(t, decimal.RequireFromString("5000").Equal(cfg.StartingBalance))
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.RateLimitRedisURL)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{"bad lock timeout", map[string]any{"LOCK_TIMEOUT": "soon"}, "LOCK_TIMEOUT"},
		{"zero transfer timeout", map[string]any{"TRANSFER_TIMEOUT": "0s"}, "TRANSFER_TIMEOUT"},
		{"fractional cents", map[string]any{"STARTING_BALANCE": "10.005"}, "STARTING_BALANCE"},
		{"negative balance", map[string]any{"STARTING_BALANCE": "-1"}, "STARTING_BALANCE"},
		{"bad log level", map[string]any{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"default secret in production", map[string]any{"IS_PRODUCTION": true, "JWT_SECRET": ""}, "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
