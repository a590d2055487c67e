package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := NewConfig()
	cfg.Target.BaseUrl = "https://payments.test.com"
	cfg.Connector = "stripe"
	cfg.Profiles.Dir = "profiles"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid target url",
			mutate:  func(c *Config) { c.Target.BaseUrl = "payments.test.com" },
			wantErr: ErrInvalidTargetUrl,
		},
		{
			name:    "missing connector",
			mutate:  func(c *Config) { c.Connector = "" },
			wantErr: ErrMissingConnector,
		},
		{
			name:    "no profile source",
			mutate:  func(c *Config) { c.Profiles.Dir = "" },
			wantErr: ErrMissingProfiles,
		},
		{
			name: "invalid profile url",
			mutate: func(c *Config) {
				c.Profiles.Dir = ""
				c.Profiles.Http.Url = "not a url"
			},
			wantErr: ErrInvalidProfileUrl,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadFile(ctx, "testdata/does-not-exist.yaml")
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadFile(ctx, "testdata/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "https://sandbox.payments.test.com", cfg.Target.BaseUrl)
		assert.Equal(t, 10*time.Second, cfg.Target.Timeout)
		assert.Equal(t, "stripe", cfg.Connector)
		assert.Equal(t, []string{"payment", "payout"}, cfg.Scenarios)
		assert.Equal(t, "profiles", cfg.Profiles.Dir)
		assert.Equal(t, ":9090", cfg.Api.ListeningAddress)
	})
}
