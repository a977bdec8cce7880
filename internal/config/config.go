package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// FileName is the optional config file looked up in the working directory.
const FileName = "chartgen.yaml"

// EnvPrefix prefixes every environment override, e.g. CHARTS_OUTPUT_DIR.
const EnvPrefix = "CHARTS"

type Config struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR"`
	DailyFile   string `yaml:"daily_file" envconfig:"DAILY_FILE"`
	SummaryFile string `yaml:"summary_file" envconfig:"SUMMARY_FILE"`
	MasterFile  string `yaml:"master_file" envconfig:"MASTER_FILE"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	Workers         int     `yaml:"workers" envconfig:"WORKERS"`
	DPI             float64 `yaml:"dpi" envconfig:"DPI"`
	VolatilitySince string  `yaml:"volatility_since" envconfig:"VOLATILITY_SINCE"`
	RiskSinceYear   int     `yaml:"risk_since_year" envconfig:"RISK_SINCE_YEAR"`
}

func Default() Config {
	return Config{
		DataDir:         "data",
		DailyFile:       "aapl_master_enriched.csv",
		SummaryFile:     "aapl_quarterly_summary.csv",
		MasterFile:      "aapl_quarterly_master.csv",
		OutputDir:       "charts",
		Workers:         1,
		DPI:             300,
		VolatilitySince: "2015-01-01",
		RiskSinceYear:   2010,
	}
}

// Load layers the defaults, the optional chartgen.yaml and CHARTS_* env vars,
// in that order of precedence (env wins).
func Load() (*Config, error) {
	return LoadFrom(FileName)
}

// LoadFrom is Load with an explicit config file path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	// no default tags: unset variables leave the layered values alone
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %g", c.DPI)
	}
	if _, err := c.VolatilityCutoff(); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"daily_file":   c.DailyFile,
		"summary_file": c.SummaryFile,
		"master_file":  c.MasterFile,
		"output_dir":   c.OutputDir,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// VolatilityCutoff parses VolatilitySince as a calendar date in UTC.
func (c *Config) VolatilityCutoff() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.VolatilitySince)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid volatility_since %q: %w", c.VolatilitySince, err)
	}
	return t, nil
}

func (c *Config) DailyPath() string   { return c.dataPath(c.DailyFile) }
func (c *Config) SummaryPath() string { return c.dataPath(c.SummaryFile) }
func (c *Config) MasterPath() string  { return c.dataPath(c.MasterFile) }

func (c *Config) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// EnsureOutputDir creates the output directory if needed. Safe to call repeatedly.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", c.OutputDir, err)
	}
	return nil
}
