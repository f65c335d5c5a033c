package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data   DataConfig
	Store  StoreConfig
	UI     UIConfig
	Log    LogConfig
	Export ExportConfig
}

// DataConfig locates the two CSV files.
type DataConfig struct {
	WineQualityPath string `mapstructure:"wine_quality_path"`
	PairingsPath    string `mapstructure:"pairings_path"`
	Delimiter       string
	Watch           bool
}

// StoreConfig selects the pairing query backend: "memory" or "sqlite".
type StoreConfig struct {
	Driver string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title       string
	PreviewRows int   `mapstructure:"preview_rows"`
	QualityBins int   `mapstructure:"quality_bins"`
	PairingBins int   `mapstructure:"pairing_bins"`
	TopCuisines int   `mapstructure:"top_cuisines"`
	SampleSize  int   `mapstructure:"sample_size"`
	SampleSeed  int64 `mapstructure:"sample_seed"`
	ChartWidth  int   `mapstructure:"chart_width"`
	ChartHeight int   `mapstructure:"chart_height"`
}

// LogConfig sets where log output goes while the TUI owns the terminal.
// An empty path discards logs.
type LogConfig struct {
	Path string
}

// ExportConfig controls PNG export.
type ExportConfig struct {
	Dir    string
	Width  int
	Height int
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Load reads configuration from file and env. Env var overrides use prefix WINEBOARD_.
// path, when non-empty, names the config file and wins over WINEBOARD_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("data.wine_quality_path", filepath.Join("data", "winequality-red.csv"))
	v.SetDefault("data.pairings_path", filepath.Join("data", "wine_food_pairings.csv"))
	v.SetDefault("data.delimiter", "")
	v.SetDefault("data.watch", false)
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("ui.title", "Wine Analytics")
	v.SetDefault("ui.preview_rows", 5)
	v.SetDefault("ui.quality_bins", 10)
	v.SetDefault("ui.pairing_bins", 5)
	v.SetDefault("ui.top_cuisines", 15)
	v.SetDefault("ui.sample_size", 10)
	v.SetDefault("ui.sample_seed", 0)
	v.SetDefault("ui.chart_width", 60)
	v.SetDefault("ui.chart_height", 12)
	v.SetDefault("log.path", defaultLogPath())
	v.SetDefault("export.dir", "charts")
	v.SetDefault("export.width", 800)
	v.SetDefault("export.height", 500)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("WINEBOARD_CONFIG")
	}
	if path == "" {
		path = findConfig()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("WINEBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the dashboards cannot work with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	if utf8.RuneCountInString(c.Data.Delimiter) > 1 {
		return fmt.Errorf("config: data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.UI.QualityBins < 1 || c.UI.PairingBins < 1 {
		return fmt.Errorf("config: histogram bins must be positive")
	}
	if c.UI.SampleSize < 0 || c.UI.PreviewRows < 0 {
		return fmt.Errorf("config: sample_size and preview_rows must not be negative")
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 for auto-detect.
func (c Config) DelimiterRune() rune {
	if c.Data.Delimiter == "" {
		return 0
	}
	if c.Data.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wineboard", "wineboard.log")
}

// findConfig returns ./wineboard.toml or the per-user config file, whichever
// exists first, or "".
func findConfig() string {
	candidates := []string{"wineboard.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "wineboard", "config.toml"))
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
