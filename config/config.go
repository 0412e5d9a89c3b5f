package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// EnvPrefix prefixes every environment override, e.g. JOURNAL_API_BASE_URL.
const EnvPrefix = "JOURNAL"

// Config represents the complete journal tool configuration
type Config struct {
	Source    SourceConfig    `json:"source" yaml:"source" envconfig:"SOURCE"`
	API       APIConfig       `json:"api" yaml:"api" envconfig:"API"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics" envconfig:"ANALYTICS"`
	Policy    risk.Policy     `json:"policy" yaml:"policy" envconfig:"POLICY"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" envconfig:"LOGGING"`
	Export    ExportConfig    `json:"export" yaml:"export" envconfig:"EXPORT"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics" envconfig:"METRICS"`
}

// SourceConfig selects where trades are read from
type SourceConfig struct {
	Type    string `json:"type" yaml:"type" envconfig:"TYPE"` // "api", "sqlite" or "csv"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty" envconfig:"DB_PATH"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty" envconfig:"CSV_PATH"`
}

// APIConfig contains trade service connection parameters
type APIConfig struct {
	BaseURL           string  `json:"base_url" yaml:"base_url" envconfig:"BASE_URL"`
	Timeout           string  `json:"timeout" yaml:"timeout" envconfig:"TIMEOUT"` // e.g., "30s"
	Token             string  `json:"token,omitempty" yaml:"token,omitempty" envconfig:"TOKEN"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int     `json:"burst" yaml:"burst" envconfig:"BURST"`
}

// ParseTimeout converts the timeout string to time.Duration
func (a APIConfig) ParseTimeout() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

// AnalyticsConfig contains the default filter and bucketing
type AnalyticsConfig struct {
	Instrument  string `json:"instrument,omitempty" yaml:"instrument,omitempty" envconfig:"INSTRUMENT"`
	From        string `json:"from,omitempty" yaml:"from,omitempty" envconfig:"FROM"` // e.g., "2024-01-01"
	To          string `json:"to,omitempty" yaml:"to,omitempty" envconfig:"TO"`
	Granularity string `json:"granularity" yaml:"granularity" envconfig:"GRANULARITY"` // daily, weekly, monthly
	Timezone    string `json:"timezone" yaml:"timezone" envconfig:"TIMEZONE"`
	CacheSize   int    `json:"cache_size" yaml:"cache_size" envconfig:"CACHE_SIZE"`
}

// Location loads the configured timezone; empty means UTC.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(a.Timezone)
}

// Filter builds the analytics filter. A date-only To covers that whole day.
func (a AnalyticsConfig) Filter() (analytics.Filter, error) {
	loc, err := a.Location()
	if err != nil {
		return analytics.Filter{}, fmt.Errorf("analytics.timezone: %w", err)
	}
	start, err := parseBound("analytics.from", a.From, loc, false)
	if err != nil {
		return analytics.Filter{}, err
	}
	end, err := parseBound("analytics.to", a.To, loc, true)
	if err != nil {
		return analytics.Filter{}, err
	}
	return analytics.Filter{Instrument: a.Instrument, Start: start, End: end}, nil
}

func parseBound(name, s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := journal.ParseTime(s, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("%s: cannot parse %q", name, s)
	}
	if endOfDay && len(s) == len("2006-01-02") {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// LoggingConfig contains logging parameters
type LoggingConfig struct {
	Level   string `json:"level" yaml:"level" envconfig:"LEVEL"`    // debug, info, warn, error
	Format  string `json:"format" yaml:"format" envconfig:"FORMAT"` // "json" or "text"
	Tracing bool   `json:"tracing" yaml:"tracing" envconfig:"TRACING"`
}

// ExportConfig contains default export destinations
type ExportConfig struct {
	XLSXPath string `json:"xlsx_path,omitempty" yaml:"xlsx_path,omitempty" envconfig:"XLSX_PATH"`
	CSVPath  string `json:"csv_path,omitempty" yaml:"csv_path,omitempty" envconfig:"CSV_PATH"`
}

// MetricsConfig contains the Prometheus textfile destination
type MetricsConfig struct {
	TextfilePath string `json:"textfile_path,omitempty" yaml:"textfile_path,omitempty" envconfig:"TEXTFILE_PATH"`
}

// Load builds the effective configuration: defaults (or the file at path),
// then JOURNAL_* environment overrides, then each override in order, then
// validation.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Fields missing from the file keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from JOURNAL_* environment variables, e.g.
// JOURNAL_SOURCE_TYPE or JOURNAL_API_TOKEN. Unset variables leave the
// current values alone.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Source.Type {
	case "api":
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api.base_url must be an http(s) URL")
		}
	case "sqlite":
		if c.Source.DBPath == "" {
			return fmt.Errorf("source db_path required for sqlite type")
		}
	case "csv":
		if c.Source.CSVPath == "" {
			return fmt.Errorf("source csv_path required for csv type")
		}
	default:
		return fmt.Errorf("source.type must be 'api', 'sqlite' or 'csv'")
	}

	if d, err := c.API.ParseTimeout(); err != nil || d < 0 {
		return fmt.Errorf("api.timeout must be a non-negative duration")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative")
	}
	if c.API.Burst < 0 {
		return fmt.Errorf("api.burst must not be negative")
	}

	if _, err := analytics.ParseGranularity(c.Analytics.Granularity); err != nil {
		return fmt.Errorf("analytics.granularity: %w", err)
	}
	f, err := c.Analytics.Filter()
	if err != nil {
		return err
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return fmt.Errorf("analytics.to must not be before analytics.from")
	}
	if c.Analytics.CacheSize < 0 {
		return fmt.Errorf("analytics.cache_size must not be negative")
	}

	pcts := []struct {
		name string
		v    float64
	}{
		{"policy.default_risk_pct", c.Policy.DefaultRiskPct},
		{"policy.max_risk_pct", c.Policy.MaxRiskPct},
		{"policy.max_daily_loss_pct", c.Policy.MaxDailyLossPct},
		{"policy.max_weekly_loss_pct", c.Policy.MaxWeeklyLossPct},
	}
	for _, p := range pcts {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1", p.name)
		}
	}
	if c.Policy.MinRR < 0 {
		return fmt.Errorf("policy.min_rr must not be negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be 'json' or 'text'")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Type: "api",
		},
		API: APIConfig{
			BaseURL:           "http://localhost:5000/api",
			Timeout:           "30s",
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Analytics: AnalyticsConfig{
			Granularity: "daily",
			Timezone:    "UTC",
			CacheSize:   analytics.DefaultCacheSize,
		},
		Policy: risk.DefaultPolicy(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			XLSXPath: "./trades.xlsx",
			CSVPath:  "./trades.csv",
		},
	}
}
