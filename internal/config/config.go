// Package config provides configuration management for the analysis
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	apperrors "stocksignal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Scanner  ScannerConfig  `mapstructure:"scanner"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Markets  MarketsConfig  `mapstructure:"markets"`
	Data     DataConfig     `mapstructure:"data"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// AnalysisConfig holds indicator and analyzer parameters.
type AnalysisConfig struct {
	RSIPeriod       int     `mapstructure:"rsi_period"`
	ATRPeriod       int     `mapstructure:"atr_period"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerStdDev float64 `mapstructure:"bollinger_std_dev"`
	MinBars         int     `mapstructure:"min_bars"`
	Workers         int     `mapstructure:"workers"`
}

// ScannerConfig holds pattern scanner parameters.
type ScannerConfig struct {
	Lookback      int     `mapstructure:"lookback"`
	MinDistance   int     `mapstructure:"min_distance"`
	MaxDistance   int     `mapstructure:"max_distance"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MinDepth      float64 `mapstructure:"min_depth"`
	MinConfidence float64 `mapstructure:"min_confidence"`
	MaxResults    int     `mapstructure:"max_results"`
}

// ScanConfig holds screening run parameters.
type ScanConfig struct {
	Workers  int    `mapstructure:"workers"`
	Schedule string `mapstructure:"schedule"` // interval like "10m", empty disables
}

// MarketsConfig holds the per-market capitalization tier tables.
type MarketsConfig struct {
	KRTiers []TierConfig `mapstructure:"kr_tiers"`
	USTiers []TierConfig `mapstructure:"us_tiers"`
}

// TierConfig is one capitalization tier: caps >= Min score Score points.
type TierConfig struct {
	Min   float64 `mapstructure:"min"`
	Score int     `mapstructure:"score"`
}

// DataConfig holds market data source configuration.
type DataConfig struct {
	CSVDir string `mapstructure:"csv_dir"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// UIConfig holds output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stocksignal"
	}
	return filepath.Join(home, ".config", "stocksignal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfigInvalid, err.Error())
	}
	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Config file not found, create template and run on defaults.
		if err := createTemplateConfig(configDir, name); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("analysis.rsi_period", 14)
	v.SetDefault("analysis.atr_period", 14)
	v.SetDefault("analysis.bollinger_period", 20)
	v.SetDefault("analysis.bollinger_std_dev", 2.0)
	v.SetDefault("analysis.min_bars", 60)
	v.SetDefault("analysis.workers", 4)

	v.SetDefault("scanner.lookback", 5)
	v.SetDefault("scanner.min_distance", 10)
	v.SetDefault("scanner.max_distance", 50)
	v.SetDefault("scanner.tolerance", 0.02)
	v.SetDefault("scanner.min_depth", 0.03)
	v.SetDefault("scanner.min_confidence", 70.0)
	v.SetDefault("scanner.max_results", 5)

	v.SetDefault("scan.workers", 8)
	v.SetDefault("scan.schedule", "")

	v.SetDefault("data.csv_dir", filepath.Join(configDir, "data"))
	v.SetDefault("store.path", filepath.Join(configDir, "stocksignal.db"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "stocksignal.log"))
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKSIGNAL_DATA_DIR"); v != "" {
		cfg.Data.CSVDir = v
	}
	if v := os.Getenv("STOCKSIGNAL_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("STOCKSIGNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("STOCKSIGNAL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scan.Workers = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.RSIPeriod < 2 {
		return fmt.Errorf("analysis.rsi_period must be at least 2")
	}
	if c.Analysis.ATRPeriod < 1 {
		return fmt.Errorf("analysis.atr_period must be at least 1")
	}
	if c.Analysis.BollingerPeriod < 2 {
		return fmt.Errorf("analysis.bollinger_period must be at least 2")
	}
	if c.Analysis.BollingerStdDev <= 0 {
		return fmt.Errorf("analysis.bollinger_std_dev must be positive")
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1")
	}

	if c.Scanner.Tolerance <= 0 {
		return fmt.Errorf("scanner.tolerance must be positive")
	}
	if c.Scanner.MinDistance <= c.Scanner.Lookback {
		return fmt.Errorf("scanner.min_distance must exceed scanner.lookback")
	}
	if c.Scanner.MaxDistance < c.Scanner.MinDistance {
		return fmt.Errorf("scanner.max_distance must be at least scanner.min_distance")
	}
	if c.Scanner.MinConfidence < 0 || c.Scanner.MinConfidence > 100 {
		return fmt.Errorf("scanner.min_confidence must be between 0 and 100")
	}

	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1")
	}

	for i, t := range c.Markets.KRTiers {
		if t.Score < 0 {
			return fmt.Errorf("markets.kr_tiers[%d].score must be non-negative", i)
		}
	}
	for i, t := range c.Markets.USTiers {
		if t.Score < 0 {
			return fmt.Errorf("markets.us_tiers[%d].score must be non-negative", i)
		}
	}

	return nil
}
