package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "api", cfg.Source.Type)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "daily", cfg.Analytics.Granularity)
	assert.Equal(t, 0.01, cfg.Policy.MaxRiskPct)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	with := func(mut func(*Config)) *Config {
		cfg := Default()
		mut(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "unknown source",
			config:  with(func(c *Config) { c.Source.Type = "postgres" }),
			wantErr: true,
			errMsg:  "source.type must be",
		},
		{
			name:    "sqlite without path",
			config:  with(func(c *Config) { c.Source.Type = "sqlite" }),
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "sqlite with path",
			config:  with(func(c *Config) { c.Source = SourceConfig{Type: "sqlite", DBPath: "trades.db"} }),
			wantErr: false,
		},
		{
			name:    "csv without path",
			config:  with(func(c *Config) { c.Source.Type = "csv" }),
			wantErr: true,
			errMsg:  "csv_path required",
		},
		{
			name:    "bad base url",
			config:  with(func(c *Config) { c.API.BaseURL = "localhost:5000" }),
			wantErr: true,
			errMsg:  "api.base_url",
		},
		{
			name:    "bad timeout",
			config:  with(func(c *Config) { c.API.Timeout = "soon" }),
			wantErr: true,
			errMsg:  "api.timeout",
		},
		{
			name:    "negative rate",
			config:  with(func(c *Config) { c.API.RequestsPerSecond = -1 }),
			wantErr: true,
			errMsg:  "requests_per_second",
		},
		{
			name:    "bad granularity",
			config:  with(func(c *Config) { c.Analytics.Granularity = "hourly" }),
			wantErr: true,
			errMsg:  "analytics.granularity",
		},
		{
			name:    "bad timezone",
			config:  with(func(c *Config) { c.Analytics.Timezone = "Mars/Olympus" }),
			wantErr: true,
			errMsg:  "analytics.timezone",
		},
		{
			name:    "bad from",
			config:  with(func(c *Config) { c.Analytics.From = "yesterday" }),
			wantErr: true,
			errMsg:  "analytics.from",
		},
		{
			name: "to before from",
			config: with(func(c *Config) {
				c.Analytics.From = "2024-03-10"
				c.Analytics.To = "2024-03-01"
			}),
			wantErr: true,
			errMsg:  "analytics.to must not be before",
		},
		{
			name: "same day range",
			config: with(func(c *Config) {
				c.Analytics.From = "2024-03-10"
				c.Analytics.To = "2024-03-10"
			}),
			wantErr: false,
		},
		{
			name:    "risk pct over one",
			config:  with(func(c *Config) { c.Policy.MaxRiskPct = 1.5 }),
			wantErr: true,
			errMsg:  "policy.max_risk_pct must be between 0 and 1",
		},
		{
			name:    "bad log format",
			config:  with(func(c *Config) { c.Logging.Format = "xml" }),
			wantErr: true,
			errMsg:  "logging.format",
		},
		{
			name:    "bad log level",
			config:  with(func(c *Config) { c.Logging.Level = "trace" }),
			wantErr: true,
			errMsg:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyticsFilter(t *testing.T) {
	a := AnalyticsConfig{
		Instrument: "EURUSD",
		From:       "2024-03-01",
		To:         "2024-03-31",
		Timezone:   "UTC",
	}
	f, err := a.Filter()
	require.NoError(t, err)

	assert.Equal(t, "EURUSD", f.Instrument)
	assert.True(t, f.Start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.End.Equal(time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC)))

	a.To = "2024-03-31 12:00"
	f, err = a.Filter()
	require.NoError(t, err)
	assert.True(t, f.End.Equal(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)))

	f, err = AnalyticsConfig{}.Filter()
	require.NoError(t, err)
	assert.True(t, f.Start.IsZero())
	assert.True(t, f.End.IsZero())
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Source = SourceConfig{Type: "sqlite", DBPath: "/var/lib/journal/trades.db"}
			cfg.Policy.MinRR = 2
			path := filepath.Join(tmpDir, "test"+tt.ext)

			// Save
			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			// Verify file exists
			_, err = os.Stat(path)
			require.NoError(t, err)

			// Load
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			// Compare
			assert.Equal(t, cfg.Source, loaded.Source)
			assert.Equal(t, cfg.API, loaded.API)
			assert.Equal(t, cfg.Policy, loaded.Policy)
			assert.Equal(t, cfg.Analytics, loaded.Analytics)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  type: csv\n  csv_path: trades.csv\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Source.Type)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, "daily", cfg.Analytics.Granularity)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("JOURNAL_SOURCE_TYPE", "sqlite")
	t.Setenv("JOURNAL_SOURCE_DB_PATH", "/tmp/env.db")
	t.Setenv("JOURNAL_API_TOKEN", "s3cret")
	t.Setenv("JOURNAL_ANALYTICS_CACHE_SIZE", "8")
	t.Setenv("JOURNAL_POLICY_MIN_RR", "2.5")
	t.Setenv("JOURNAL_LOGGING_TRACING", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Source.Type)
	assert.Equal(t, "/tmp/env.db", cfg.Source.DBPath)
	assert.Equal(t, "s3cret", cfg.API.Token)
	assert.Equal(t, 8, cfg.Analytics.CacheSize)
	assert.Equal(t, 2.5, cfg.Policy.MinRR)
	assert.True(t, cfg.Logging.Tracing)

	// untouched fields keep their defaults
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, Default().SaveToFile(path))
	t.Setenv("JOURNAL_API_BASE_URL", "https://journal.example.com/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://journal.example.com/api", cfg.API.BaseURL)
}

func TestLoadOverridesBeforeValidate(t *testing.T) {
	t.Setenv("JOURNAL_SOURCE_TYPE", "sqlite")

	_, err := Load("")
	require.Error(t, err, "sqlite without a db path")

	cfg, err := Load("", func(c *Config) { c.Source.DBPath = "./j.sqlite" })
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Source.Type)
	assert.Equal(t, "./j.sqlite", cfg.Source.DBPath)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("JOURNAL_ANALYTICS_CACHE_SIZE", "lots")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("JOURNAL_ANALYTICS_CACHE_SIZE", "4")
	t.Setenv("JOURNAL_SOURCE_TYPE", "mongo")
	_, err = Load("")
	assert.Error(t, err)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		timeout  string
		expected string
		wantErr  bool
	}{
		{"1h", "1h0m0s", false},
		{"30s", "30s", false},
		{"", "0s", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			d, err := APIConfig{Timeout: tt.timeout}.ParseTimeout()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}
