package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Stock Signal Configuration

[analysis]
# RSI lookback period
rsi_period = 14
# ATR lookback period
atr_period = 14
# Bollinger Band period and standard deviation multiplier
bollinger_period = 20
bollinger_std_dev = 2.0
# Minimum bars required for full analysis
min_bars = 60
# Indicator engine worker count
workers = 4

[scanner]
# Local extremum lookback for double top/bottom scanning
lookback = 5
# Allowed bar distance between the two extremes
min_distance = 10
max_distance = 50
# Relative price tolerance between the two extremes
tolerance = 0.02
# Minimum retracement depth between the extremes
min_depth = 0.03
# Confidence filter and result cap
min_confidence = 70.0
max_results = 5

[scan]
# Screening worker count
workers = 8
# Recurring scan interval ("10m", "1h"); empty disables scheduling
schedule = ""

[markets]
# Capitalization tiers per market; caps at or above min earn score points.
# KR caps are in 100M KRW units, US caps in millions of USD.
# Leave empty to use the built-in tiers.
# kr_tiers = [{ min = 100000.0, score = 15 }]
# us_tiers = [{ min = 1000000.0, score = 15 }]

[data]
# Directory of <symbol>.csv candle files
# csv_dir = "/path/to/data"

[store]
# SQLite database path
# path = "/path/to/stocksignal.db"

[logging]
# Log level: trace, debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true
# max_size is in MB, max_age in days
max_size = 10
max_backups = 5
max_age = 30

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	// First run continues on defaults with the template in place.
	return nil
}
