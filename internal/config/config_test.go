package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "seogen.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Server.CacheMaxAgeSecs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 1000, cfg.Policy.MinMonthlySearches)
	assert.InDelta(t, 0.10, cfg.Policy.SampleRate, 0.001)
	assert.Equal(t, 8, cfg.Generate.Workers)
	assert.Equal(t, 60, cfg.Generate.TimeoutSecs)
	assert.Equal(t, 15, cfg.Generate.CacheTTLMinutes)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 1024, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 900, cfg.Pricing.EnhancedAvgInput)
	assert.Equal(t, 700, cfg.Pricing.EnhancedAvgOutput)
	require.Contains(t, cfg.Pricing.Anthropic, "claude-haiku-4-5-20251001")
	assert.InDelta(t, 0.80, cfg.Pricing.Anthropic["claude-haiku-4-5-20251001"].Input, 0.001)
}

func TestLoadFromYAML(t *testing.T) {
	chtemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/seogen
log:
  level: debug
  format: console
server:
  port: 9090
policy:
  min_monthly_searches: 500
  sample_rate: 0.25
generate:
  workers: 4
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/seogen", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Policy.MinMonthlySearches)
	assert.InDelta(t, 0.25, cfg.Policy.SampleRate, 0.001)
	assert.Equal(t, 4, cfg.Generate.Workers)
	// Unset keys keep their defaults.
	assert.Equal(t, 15, cfg.Generate.CacheTTLMinutes)
}

func TestLoadFromEnv(t *testing.T) {
	chtemp(t)

	t.Setenv("SEOGEN_SERVER_PORT", "3000")
	t.Setenv("SEOGEN_POLICY_SAMPLE_RATE", "0.5")
	t.Setenv("SEOGEN_ANTHROPIC_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.InDelta(t, 0.5, cfg.Policy.SampleRate, 0.001)
	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{"json info", LogConfig{Level: "info", Format: "json"}, false},
		{"console debug", LogConfig{Level: "debug", Format: "console"}, false},
		{"bad level", LogConfig{Level: "shouty", Format: "json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, zap.L())
		})
	}
}
