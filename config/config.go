/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/columnorm/storagemodels"
)

// Config holds connection and tuning settings for a columnorm deployment.
type Config struct {
	// Region is the AWS region of the DynamoDB tables.
	Region string `yaml:"region"`

	// Endpoint overrides the DynamoDB endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint"`

	// AccessKey and SecretKey select static credentials. When empty the
	// default AWS credential chain is used.
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`

	// TablePrefix is prepended to column family names to form table names.
	// Default: "columnorm_"
	TablePrefix string `yaml:"tablePrefix"`

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"logLevel"`

	Fetch FetchConfig `yaml:"fetch"`
}

// FetchConfig mirrors storagemodels.FetchOptions.
type FetchConfig struct {
	// BatchSize is the write batch size. Max: 25
	BatchSize int `yaml:"batchSize"`
	// PageSize is the number of columns per query page.
	PageSize int32 `yaml:"pageSize"`
	// MaxConcurrency bounds parallel row queries. Max: 64
	MaxConcurrency int `yaml:"maxConcurrency"`
	// MaxRetries for throttled or transient errors.
	MaxRetries int `yaml:"maxRetries"`
	// RetryBackoff between attempts, e.g. "200ms".
	RetryBackoff time.Duration `yaml:"retryBackoff"`
}

// Default returns settings suitable for local development.
func Default() Config {
	d := storagemodels.DefaultFetchOptions()
	return Config{
		Region:      "us-east-1",
		TablePrefix: "columnorm_",
		LogLevel:    "info",
		Fetch: FetchConfig{
			BatchSize:      d.BatchSize,
			PageSize:       d.PageSize,
			MaxConcurrency: d.MaxConcurrency,
			MaxRetries:     d.MaxRetries,
			RetryBackoff:   d.RetryBackoff,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the given .env files (".env" when none are given; missing
// files are ignored) and finally the process environment.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	overrides := []struct {
		env   string
		field *string
	}{
		{"AWS_ACCESS_KEY", &cfg.AccessKey},
		{"AWS_SECRET_KEY", &cfg.SecretKey},
		{"AWS_REGION", &cfg.Region},
		{"COLUMNORM_ENDPOINT", &cfg.Endpoint},
		{"COLUMNORM_TABLE_PREFIX", &cfg.TablePrefix},
		{"COLUMNORM_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.field = v
		}
	}

	cfg.validate()
	return cfg, nil
}

// validate clamps values into their accepted ranges.
func (c *Config) validate() {
	opts := storagemodels.FetchOptions{
		BatchSize:      c.Fetch.BatchSize,
		PageSize:       c.Fetch.PageSize,
		MaxConcurrency: c.Fetch.MaxConcurrency,
		MaxRetries:     c.Fetch.MaxRetries,
		RetryBackoff:   c.Fetch.RetryBackoff,
	}
	opts.Clamp()
	c.Fetch = FetchConfig{
		BatchSize:      opts.BatchSize,
		PageSize:       opts.PageSize,
		MaxConcurrency: opts.MaxConcurrency,
		MaxRetries:     opts.MaxRetries,
		RetryBackoff:   opts.RetryBackoff,
	}
}

// FetchOptions converts the fetch settings into store options.
func (c Config) FetchOptions() []storagemodels.FetchOption {
	return []storagemodels.FetchOption{
		storagemodels.WithBatchSize(c.Fetch.BatchSize),
		storagemodels.WithPageSize(c.Fetch.PageSize),
		storagemodels.WithMaxConcurrency(c.Fetch.MaxConcurrency),
		storagemodels.WithMaxRetries(c.Fetch.MaxRetries),
		storagemodels.WithRetryBackoff(c.Fetch.RetryBackoff),
	}
}

// SlogLevel maps LogLevel onto slog; unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
