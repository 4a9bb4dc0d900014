// Package config loads dashboard settings from an optional YAML file and
// the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phillip-england/recruitdesk/internal/envutil"
)

const (
	EnvConfigPath = "RECRUITDESK_CONFIG"
	EnvAddr       = "DASHBOARD_ADDR"
	EnvLogLevel   = "LOG_LEVEL"
	EnvSeedPath   = "SEED_PATH"
)

type Config struct {
	Addr            string   `yaml:"addr"`
	LogLevel        string   `yaml:"log_level"`
	SeedPath        string   `yaml:"seed_path"`
	PageSizes       []int    `yaml:"page_sizes"`
	DefaultPageSize int      `yaml:"default_page_size"`
	MaxUploadBytes  int64    `yaml:"max_upload_bytes"`
	Timezone        string   `yaml:"timezone"`
	CallProviders   []string `yaml:"call_providers"`

	ReadTimeout  time.Duration `yaml:"-"`
	WriteTimeout time.Duration `yaml:"-"`
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		PageSizes:       []int{10, 25, 50},
		DefaultPageSize: 10,
		MaxUploadBytes:  20 << 20,
		CallProviders:   []string{"Vapi", "Ultravox"},
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Addr = envutil.OrDefault(EnvAddr, cfg.Addr)
	cfg.LogLevel = envutil.OrDefault(EnvLogLevel, cfg.LogLevel)
	cfg.SeedPath = envutil.OrDefault(EnvSeedPath, cfg.SeedPath)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if len(c.PageSizes) == 0 {
		return errors.New("page_sizes must not be empty")
	}
	for _, size := range c.PageSizes {
		if size < 1 {
			return fmt.Errorf("page size %d must be positive", size)
		}
	}
	if !slices.Contains(c.PageSizes, c.DefaultPageSize) {
		return fmt.Errorf("default_page_size %d is not one of page_sizes %v", c.DefaultPageSize, c.PageSizes)
	}
	if c.MaxUploadBytes < 1 {
		return errors.New("max_upload_bytes must be positive")
	}
	if len(c.CallProviders) == 0 {
		return errors.New("call_providers must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone; empty means the host zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds the process logger: text output on stderr at the configured
// level.
func (c Config) Logger() *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// PageSize returns requested when it is an allowed choice and the default
// otherwise.
func (c Config) PageSize(requested int) int {
	if slices.Contains(c.PageSizes, requested) {
		return requested
	}
	return c.DefaultPageSize
}
