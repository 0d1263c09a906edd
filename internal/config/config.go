// Package config loads quizmaster settings from an optional .env file, an
// optional config.yaml, QUIZMASTER_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// ErrMissingDSN is returned when the postgres driver has no connection string.
	ErrMissingDSN = errors.New("storage.dsn or DATABASE_URL is required for postgres")
	// ErrInvalid is returned for out-of-range settings.
	ErrInvalid = errors.New("invalid configuration")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Env      string   `mapstructure:"env"` // local, dev, production
	Lectures Lectures `mapstructure:"lectures"`
	Storage  Storage  `mapstructure:"storage"`
	Log      Log      `mapstructure:"log"`
}

// Lectures configures where lecture files come from.
type Lectures struct {
	Source      string `mapstructure:"source"`      // directory or http(s) base URL
	Max         int    `mapstructure:"max"`         // ids 1..Max are attempted
	Concurrency int    `mapstructure:"concurrency"` // parallel fetches
}

// Storage configures session persistence.
type Storage struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	Path   string `mapstructure:"path"`   // sqlite file, empty for the default location
	DSN    string `mapstructure:"dsn"`    // postgres connection string
}

// Log configures the log file.
type Log struct {
	Path string `mapstructure:"path"` // empty for <data dir>/quizmaster.log
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When empty, config.yaml is searched
	// for in ./config and $XDG_CONFIG_HOME/quizmaster.
	File string
	// EnvFile is the dotenv file to load first. Defaults to ".env".
	EnvFile string
	// Flags are bound over every other source: "db" sets storage.path and
	// "lectures" sets lectures.source.
	Flags *pflag.FlagSet
}

var flagKeys = map[string]string{
	"db":       "storage.path",
	"lectures": "lectures.source",
}

// Load reads configuration. A missing .env or config file is not an error.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(filepath.Join(xdgConfigHome(), "quizmaster"))
	}

	v.SetDefault("env", "local")
	v.SetDefault("lectures.source", "./lectures")
	v.SetDefault("lectures.max", 20)
	v.SetDefault("lectures.concurrency", 4)
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("log.path", "")

	v.SetEnvPrefix("QUIZMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("storage.dsn", "QUIZMASTER_STORAGE_DSN", "DATABASE_URL")

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Lectures.Max < 1 {
		return fmt.Errorf("%w: lectures.max must be positive", ErrInvalid)
	}
	if c.Lectures.Concurrency < 1 {
		return fmt.Errorf("%w: lectures.concurrency must be positive", ErrInvalid)
	}
	return nil
}

// IsProduction reports whether the production logger should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func xdgConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}
