// Package config loads service settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultModalBaseURL = "https://laenutaotlus.bigbank.ee"

type Config struct {
	ListenAddr     string        `mapstructure:"LISTEN_ADDR"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	HistorySize    int           `mapstructure:"HISTORY_SIZE"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	ModalBaseURL   string        `mapstructure:"MODAL_BASE_URL"`
}

var defaults = map[string]any{
	"LISTEN_ADDR":      ":8080",
	"REDIS_ADDR":       "",
	"CACHE_TTL":        "10m",
	"RATE_LIMIT_RPS":   5.0,
	"RATE_LIMIT_BURST": 10,
	"HISTORY_SIZE":     100,
	"LOG_LEVEL":        "info",
	"MODAL_BASE_URL":   DefaultModalBaseURL,
}

// Load reads ./.env when present, then the environment. Environment
// variables win over the file.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. An empty path skips the
// file.
func LoadFile(envFile string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	c := Config{}
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c Config) Validate() error {
	var problems []string
	if c.ListenAddr == "" {
		problems = append(problems, "LISTEN_ADDR is empty")
	}
	if c.CacheTTL < 0 {
		problems = append(problems, "CACHE_TTL is negative")
	}
	if c.RateLimitRPS <= 0 {
		problems = append(problems, "RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		problems = append(problems, "RATE_LIMIT_BURST must be positive")
	}
	if c.HistorySize <= 0 {
		problems = append(problems, "HISTORY_SIZE must be positive")
	}
	if _, err := c.Level(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Level parses LOG_LEVEL as a slog level name ("debug", "info", ...).
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not a log level", c.LogLevel)
	}
	return level, nil
}
