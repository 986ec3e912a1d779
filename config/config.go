// Package config loads the YAML configuration of the command line and
// its secrets from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/logger"
	"github.com/etnz/sharetrack/pricing"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration read when none is given.
const DefaultPath = "configs/config.yml"

// Environment variables overriding the file.
const (
	EnvCoinSpotAPIKey = "COINSPOT_API_KEY"
	EnvLogLevel       = "SHARETRACK_LOG"
)

// Config is the application configuration.
type Config struct {
	BaseCurrency string            `yaml:"base_currency"`
	Timezone     string            `yaml:"timezone"`
	Benchmark    Benchmark         `yaml:"benchmark"`
	SymbolMap    map[string]string `yaml:"symbol_map"`
	RiskFreeRate float64           `yaml:"risk_free_rate"`
	Paths        Paths             `yaml:"paths"`
	Tax          Tax               `yaml:"tax"`
	CoinSpot     CoinSpot          `yaml:"coinspot"`
	Log          Log               `yaml:"log"`
}

type Benchmark struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker"`
}

type Paths struct {
	ProcessedDir string `yaml:"processed_dir"`
	OutputsDir   string `yaml:"outputs_dir"`
}

type Tax struct {
	FiscalYearStart string `yaml:"fiscal_year_start"` // MM-DD
	DiscountDays    int    `yaml:"discount_days"`
	Strict          bool   `yaml:"strict"`
}

type CoinSpot struct {
	HistoryURL        string  `yaml:"history_url"`
	LatestURL         string  `yaml:"latest_url"`
	APIKeyHeader      string  `yaml:"api_key_header"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	APIKey            string  `yaml:"-"` // only from the environment
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when a key is absent.
func Default() *Config {
	return &Config{
		BaseCurrency: sharetrack.DefaultCurrency,
		Timezone:     "Australia/Sydney",
		Benchmark:    Benchmark{Name: "ASX 200", Ticker: "IOZ.AX"},
		SymbolMap:    map[string]string{},
		Paths:        Paths{ProcessedDir: "data/processed", OutputsDir: "outputs"},
		Tax: Tax{
			FiscalYearStart: "07-01",
			DiscountDays:    sharetrack.DefaultDiscountDays,
		},
		CoinSpot: CoinSpot{
			HistoryURL:        "https://www.coinspot.com.au/pubapi/v2/history/{coin}",
			APIKeyHeader:      "key",
			TimeoutSeconds:    30,
			RequestsPerSecond: 1,
		},
		Log: Log{Level: "info", Pretty: true},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment, a .env file in the working directory included.
//
// A missing file is an error unless path is DefaultPath.
func Load(path string) (*Config, error) {
	// .env is optional, but a malformed one is an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvCoinSpotAPIKey); v != "" {
		c.CoinSpot.APIKey = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if len(c.BaseCurrency) != 3 {
		errs = append(errs, fmt.Errorf("base_currency %q is not an ISO code", c.BaseCurrency))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.Benchmark.Ticker == "" {
		errs = append(errs, errors.New("benchmark.ticker is required"))
	}
	if _, err := parseFiscalStart(c.Tax.FiscalYearStart); err != nil {
		errs = append(errs, err)
	}
	if c.Tax.DiscountDays < 0 {
		errs = append(errs, fmt.Errorf("tax.discount_days %d is negative", c.Tax.DiscountDays))
	}
	if c.CoinSpot.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("coinspot.requests_per_second %v is negative", c.CoinSpot.RequestsPerSecond))
	}
	return errors.Join(errs...)
}

// Location returns the timezone of broker timestamps.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FiscalRule returns the fiscal year boundary.
func (c *Config) FiscalRule() sharetrack.FiscalRule {
	r, err := parseFiscalStart(c.Tax.FiscalYearStart)
	if err != nil {
		return sharetrack.AustralianFiscalYear
	}
	return r
}

func parseFiscalStart(s string) (sharetrack.FiscalRule, error) {
	t, err := time.Parse("01-02", strings.TrimSpace(s))
	if err != nil {
		return sharetrack.FiscalRule{}, fmt.Errorf("tax.fiscal_year_start %q: want MM-DD", s)
	}
	return sharetrack.FiscalRule{Month: t.Month(), Day: t.Day()}, nil
}

// MatchOptions returns the FIFO matching options.
func (c *Config) MatchOptions() sharetrack.MatchOptions {
	return sharetrack.MatchOptions{Strict: c.Tax.Strict, DiscountDays: c.Tax.DiscountDays}
}

// CoinSpotConfig returns the CoinSpot provider configuration.
func (c *Config) CoinSpotConfig() pricing.CoinSpotConfig {
	return pricing.CoinSpotConfig{
		HistoryURL:        c.CoinSpot.HistoryURL,
		LatestURL:         c.CoinSpot.LatestURL,
		APIKey:            c.CoinSpot.APIKey,
		APIKeyHeader:      c.CoinSpot.APIKeyHeader,
		Timeout:           time.Duration(c.CoinSpot.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.CoinSpot.RequestsPerSecond,
	}
}

// Logger returns the logger configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.Log.Level, Pretty: c.Log.Pretty}
}

// CachePath is the SQLite price cache.
func (c *Config) CachePath() string { return filepath.Join(c.Paths.ProcessedDir, "prices.db") }

// ReportsDir holds the CSV reports.
func (c *Config) ReportsDir() string { return filepath.Join(c.Paths.OutputsDir, "reports") }

// ChartsDir holds the charts and the HTML report.
func (c *Config) ChartsDir() string { return filepath.Join(c.Paths.OutputsDir, "charts") }
