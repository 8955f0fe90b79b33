package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"sma-crossover-lab/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Analysis struct {
		Symbol         string `yaml:"symbol"`
		SMAPeriod      int    `yaml:"sma_period"`
		LookaheadBars  int    `yaml:"lookahead_bars"`
		YearsOfHistory int    `yaml:"years_of_history"`
	} `yaml:"analysis"`
	DataSource struct {
		UseSynthetic bool   `yaml:"use_synthetic"`
		BaseURL      string `yaml:"base_url"`
	} `yaml:"data_source"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		PostgresDSN   string `yaml:"postgres_dsn"`
		ClickhouseDSN string `yaml:"clickhouse_dsn"`
	} `yaml:"database"`
	Server struct {
		ListenAddr  string `yaml:"listen_addr"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"server"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults and environment fill the gaps.
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
	if v := os.Getenv("SMA_SYMBOL"); v != "" {
		cfg.Analysis.Symbol = v
	}
	if v := os.Getenv("SMA_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.SMAPeriod = n
		}
	}
	if v := os.Getenv("SMA_LOOKAHEAD_BARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.LookaheadBars = n
		}
	}
	if v := os.Getenv("SMA_YEARS_OF_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.YearsOfHistory = n
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Database.ClickhouseDSN = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Server.RefreshCron = v
	}

	// Defaults
	if cfg.Analysis.Symbol == "" {
		cfg.Analysis.Symbol = "SPX500"
	}
	if cfg.Analysis.SMAPeriod == 0 {
		cfg.Analysis.SMAPeriod = 50
	}
	if cfg.Analysis.LookaheadBars == 0 {
		cfg.Analysis.LookaheadBars = 100
	}
	if cfg.Analysis.YearsOfHistory == 0 {
		cfg.Analysis.YearsOfHistory = 10
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.RefreshCron == "" {
		cfg.Server.RefreshCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// AnalysisConfig converts the analysis section to the domain config.
func (c *Config) AnalysisConfig() domain.AnalysisConfig {
	return domain.AnalysisConfig{
		Symbol:         c.Analysis.Symbol,
		SMAPeriod:      c.Analysis.SMAPeriod,
		LookaheadBars:  c.Analysis.LookaheadBars,
		YearsOfHistory: c.Analysis.YearsOfHistory,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.AnalysisConfig().Validate(); err != nil {
		return err
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	return nil
}
