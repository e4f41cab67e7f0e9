package config

import (
	"os"
	"strings"

	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval  = 2
	DefaultThreshold = 90.0
	DefaultPetName   = "Byte"
	DefaultPetType   = "cat"
	DefaultDiskPath  = "/"
	DefaultLogLevel  = "info"

	MinThreshold = 50.0
	MaxThreshold = 100.0
)

// Config carries runtime options for serverpet.
type Config struct {
	Interval          int     `mapstructure:"interval"`
	CriticalThreshold float64 `mapstructure:"critical_threshold"`
	Alerts            bool    `mapstructure:"alerts"`
	PetName           string  `mapstructure:"pet_name"`
	PetType           string  `mapstructure:"pet_type"`
	DiskPath          string  `mapstructure:"disk_path"`
	Monitor           bool    `mapstructure:"monitor"`
	Telemetry         bool    `mapstructure:"telemetry"`
	TelemetryDB       string  `mapstructure:"telemetry_db"`
	LogLevel          string  `mapstructure:"log_level"`
	LogFile           string  `mapstructure:"log_file"`
}

// Load reads configuration from defaults, the TOML config file, environment
// variables (SERVERPET_*) and command line flags, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("critical_threshold", DefaultThreshold)
	v.SetDefault("alerts", true)
	v.SetDefault("pet_name", DefaultPetName)
	v.SetDefault("pet_type", DefaultPetType)
	v.SetDefault("disk_path", DefaultDiskPath)
	v.SetDefault("monitor", false)
	v.SetDefault("telemetry", false)
	v.SetDefault("telemetry_db", defaultTelemetryDBPath())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")

	fs := pflag.NewFlagSet("serverpet", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int("interval", DefaultInterval, "Seconds between samples")
	fs.Float64("critical-threshold", DefaultThreshold, "Critical resource threshold in percent [50,100]")
	fs.Bool("alerts", true, "Enable critical alerts")
	fs.String("pet-name", DefaultPetName, "Name of the pet")
	fs.String("pet-type", DefaultPetType, "Pet type: cat, dog or robot")
	fs.String("disk-path", DefaultDiskPath, "Filesystem path whose usage is monitored")
	fs.Bool("monitor", false, "Headless mode: log snapshots instead of running the TUI")
	fs.Bool("telemetry", false, "Record snapshots to the telemetry database")
	fs.String("telemetry-db", "", "Path to the telemetry database")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warn or error")
	fs.String("log-file", "", "Write logs to this file instead of stdout")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errors.Wrap(errors.ErrBindFlags, err)
	}

	// Flags use dashes, config keys use underscores.
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
		}
	})

	v.SetEnvPrefix("SERVERPET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("SERVERPET_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("serverpet")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/serverpet")
		}
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicit SERVERPET_CONFIG pointing at a missing file is also
			// a config-not-found case, not a fatal one.
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil || v.ConfigFileUsed() == "" {
				return nil, errors.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration. Invalid values are rejected here,
// before the engine ever sees them.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return errors.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.CriticalThreshold < MinThreshold || c.CriticalThreshold > MaxThreshold {
		return errors.WithData(errors.ErrInvalidThreshold, c.CriticalThreshold)
	}

	switch c.PetType {
	case "cat", "dog", "robot":
	default:
		return errors.WithData(errors.ErrInvalidPetType, c.PetType)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errors.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without a database path")
	}

	return nil
}

func defaultTelemetryDBPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/serverpet/telemetry.db"
	}

	return os.TempDir() + "/serverpet-telemetry.db"
}
