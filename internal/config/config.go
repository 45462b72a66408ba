package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ExchangeConfig names one exchange whose cache is analyzed. The
// batch limit belongs to whatever populated the cache; it is carried
// here so one config file can drive both population and analysis.
type ExchangeConfig struct {
	Name               string `yaml:"name"`
	MaxTicksPerRequest int    `yaml:"max_ticks_per_request"`
}

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir      string `yaml:"dir"`
		TickSize string `yaml:"tick_size"`
		Start    string `yaml:"start"`
		NumTicks int    `yaml:"num_ticks"`
	} `yaml:"data"`
	Exchanges []ExchangeConfig `yaml:"exchanges"`
	Pairs     []string         `yaml:"pairs"`
	Analysis  struct {
		ReferencePair  string  `yaml:"reference_pair"`
		MaxLagOffset   int     `yaml:"max_lag_offset"`
		SmoothHalfLife float64 `yaml:"smooth_half_life"`
	} `yaml:"analysis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("TICK_SIZE"); v != "" {
		cfg.Data.TickSize = v
	}
	if v := os.Getenv("START"); v != "" {
		cfg.Data.Start = v
	}
	if v := os.Getenv("NUM_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Data.NumTicks = n
		}
	}
	if v := os.Getenv("REFERENCE_PAIR"); v != "" {
		cfg.Analysis.ReferencePair = v
	}
	if v := os.Getenv("MAX_LAG_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxLagOffset = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data/price_history"
	}
	if cfg.Data.TickSize == "" {
		cfg.Data.TickSize = "1m"
	}
	if cfg.Analysis.MaxLagOffset == 0 {
		cfg.Analysis.MaxLagOffset = 100
	}
	if cfg.Analysis.ReferencePair == "" && len(cfg.Pairs) > 0 {
		cfg.Analysis.ReferencePair = cfg.Pairs[0]
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if len(c.Exchanges) == 0 {
		return fmt.Errorf("at least one exchange is required")
	}
	for i, ex := range c.Exchanges {
		if ex.Name == "" {
			return fmt.Errorf("exchanges[%d].name is required", i)
		}
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}
	if c.Data.NumTicks <= 0 {
		return fmt.Errorf("data.num_ticks must be positive")
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	if c.Analysis.MaxLagOffset <= 0 {
		return fmt.Errorf("analysis.max_lag_offset must be positive")
	}
	found := false
	for _, p := range c.Pairs {
		if p == c.Analysis.ReferencePair {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("analysis.reference_pair %q is not in pairs", c.Analysis.ReferencePair)
	}
	if c.Analysis.SmoothHalfLife < 0 {
		return fmt.Errorf("analysis.smooth_half_life must not be negative")
	}
	return nil
}

// StartTime parses the configured start timestamp (RFC3339, UTC).
func (c *Config) StartTime() (time.Time, error) {
	if c.Data.Start == "" {
		return time.Time{}, fmt.Errorf("data.start is required")
	}
	t, err := time.Parse(time.RFC3339, c.Data.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse data.start: %w", err)
	}
	return t.UTC(), nil
}
