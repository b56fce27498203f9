package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "America/Tijuana", cfg.Market.BusinessTimezone)
	assert.Equal(t, "MXN", cfg.Market.Currency)
	assert.Equal(t, 1.0, cfg.Market.ExchangeRate)
	assert.Equal(t, "data/snapshots", cfg.Paths.SnapshotsDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)

	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "missing business timezone",
			mutate:  func(c *Config) { c.Market.BusinessTimezone = "" },
			wantErr: "business timezone",
		},
		{
			name:    "negative exchange rate",
			mutate:  func(c *Config) { c.Market.ExchangeRate = -2 },
			wantErr: "exchange rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestMergeEnvWins(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Server.Port = 9000
	fileCfg.Market.City = "New York"

	envCfg := Config{}
	envCfg.Server.Port = 8081
	envCfg.Server.ReadTimeout = 15 * time.Second

	merged := merge(fileCfg, envCfg)
	assert.Equal(t, 8081, merged.Server.Port, "env value wins")
	assert.Equal(t, "New York", merged.Market.City, "file fills the gap")
}

func TestReportPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "reports/comparison.csv", cfg.ReportPath("comparison.csv"))
	assert.Equal(t, "/tmp/out.csv", cfg.ReportPath("/tmp/out.csv"))
}
