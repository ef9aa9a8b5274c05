// Package config loads and validates the generation run configuration.
// All inputs — entity counts, defect rates, the date window, output
// locations and the optional database sink — are resolved once here and
// treated as immutable by every stage.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/KIHLYouns/GreenCity-ETL/internal/defect"
)

// Module provides the run configuration to the fx graph.
var Module = fx.Module("config", fx.Provide(Load))

// Configuration errors surface before any generation starts.
var (
	ErrInvalidCount  = errors.New("config: entity counts must be positive")
	ErrInvalidRate   = errors.New("config: defect rates must be within [0, 1]")
	ErrInvalidWindow = errors.New("config: date window start must not be after end")
)

const dateLayout = "2006-01-02"

// Counts sizes each generated collection.
type Counts struct {
	Regions                int `mapstructure:"regions"`
	Buildings              int `mapstructure:"buildings"`
	Clients                int `mapstructure:"clients"`
	Contracts              int `mapstructure:"contracts"`
	MaxInvoicesPerContract int `mapstructure:"maxInvoicesPerContract"`
}

// Window is an inclusive date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the window spans, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Output holds artifact destinations.
type Output struct {
	SQLDir  string `mapstructure:"sqlDir"`
	JSONDir string `mapstructure:"jsonDir"`
	CSVDir  string `mapstructure:"csvDir"`
}

// Database configures the optional direct load of the generated dataset.
type Database struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslMode"`
}

// Config is the full run configuration.
type Config struct {
	Seed      int64
	Counts    Counts
	Defects   defect.Rates
	Window    Window
	Telemetry Window
	Output    Output
	Database  Database
}

// Load reads greencity.yml (plus .env and GREENCITY_* overrides), fills
// defaults and validates. It fails fast on any invalid input.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("greencity")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/greencity")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GREENCITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	cfg.Seed = v.GetInt64("seed")
	if err := v.UnmarshalKey("counts", &cfg.Counts); err != nil {
		return Config{}, fmt.Errorf("config: counts: %w", err)
	}
	if err := v.UnmarshalKey("defects", &cfg.Defects); err != nil {
		return Config{}, fmt.Errorf("config: defects: %w", err)
	}
	if err := v.UnmarshalKey("output", &cfg.Output); err != nil {
		return Config{}, fmt.Errorf("config: output: %w", err)
	}
	if err := v.UnmarshalKey("database", &cfg.Database); err != nil {
		return Config{}, fmt.Errorf("config: database: %w", err)
	}

	var err error
	if cfg.Window, err = parseWindow(v, "window"); err != nil {
		return Config{}, err
	}
	if cfg.Telemetry, err = parseWindow(v, "telemetry"); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)

	v.SetDefault("counts.regions", 8)
	v.SetDefault("counts.buildings", 50)
	v.SetDefault("counts.clients", 200)
	v.SetDefault("counts.contracts", 180)
	v.SetDefault("counts.maxInvoicesPerContract", 12)

	defaults := defect.DefaultRates()
	v.SetDefault("defects.missing", defaults.Missing)
	v.SetDefault("defects.duplicate", defaults.Duplicate)
	v.SetDefault("defects.whitespace", defaults.Whitespace)
	v.SetDefault("defects.badDateFormat", defaults.BadDateFormat)
	v.SetDefault("defects.incoherent", defaults.Incoherent)

	v.SetDefault("window.start", "2024-01-01")
	v.SetDefault("window.end", "2025-01-31")
	v.SetDefault("telemetry.start", "2025-01-01")
	v.SetDefault("telemetry.end", "2025-01-14")

	v.SetDefault("output.sqlDir", "output/sql")
	v.SetDefault("output.jsonDir", "output/json")
	v.SetDefault("output.csvDir", "output/csv")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.type", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.name", "greencity_billing")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslMode", "disable")
}

func parseWindow(v *viper.Viper, key string) (Window, error) {
	start, err := time.ParseInLocation(dateLayout, v.GetString(key+".start"), time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("config: %s.start: %w", key, err)
	}
	end, err := time.ParseInLocation(dateLayout, v.GetString(key+".end"), time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("config: %s.end: %w", key, err)
	}
	return Window{Start: start, End: end}, nil
}

// Validate enforces the configuration invariants: positive counts, rates
// within [0, 1], windows not inverted.
func (c Config) Validate() error {
	counts := []int{
		c.Counts.Regions,
		c.Counts.Buildings,
		c.Counts.Clients,
		c.Counts.Contracts,
		c.Counts.MaxInvoicesPerContract,
	}
	for _, n := range counts {
		if n <= 0 {
			return ErrInvalidCount
		}
	}

	rates := []float64{
		c.Defects.Missing,
		c.Defects.Duplicate,
		c.Defects.Whitespace,
		c.Defects.BadDateFormat,
		c.Defects.Incoherent,
	}
	for _, r := range rates {
		if r < 0 || r > 1 {
			return ErrInvalidRate
		}
	}

	if c.Window.Start.After(c.Window.End) || c.Telemetry.Start.After(c.Telemetry.End) {
		return ErrInvalidWindow
	}
	return nil
}
