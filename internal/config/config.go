package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds settings shared by the converter and the comparator.
type Config struct {
	LogLevel         string `validate:"oneof=debug info warn error"`
	StrictBodyLength bool
	ConfirmOverwrite bool
	ShowDiff         int `validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		LogLevel:         "info",
		ConfirmOverwrite: true,
		ShowDiff:         10,
	}
}

// Load reads an optional .env file and then the YPBANK_* environment
// variables. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("YPBANK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}

	var err error
	if cfg.StrictBodyLength, err = envBool("YPBANK_STRICT_BODY_LEN", cfg.StrictBodyLength); err != nil {
		return nil, err
	}
	if cfg.ConfirmOverwrite, err = envBool("YPBANK_CONFIRM_OVERWRITE", cfg.ConfirmOverwrite); err != nil {
		return nil, err
	}
	if v := os.Getenv("YPBANK_SHOW_DIFF"); v != "" {
		if cfg.ShowDiff, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid YPBANK_SHOW_DIFF %q: %w", v, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel to a log.Level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// NewLogger builds the stderr logger used by both binaries.
func (c *Config) NewLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix,
		Level:  c.Level(),
	})
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
