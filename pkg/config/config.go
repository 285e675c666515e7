// Package config loads abcinema settings from the environment, an optional
// .abcinema file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved configuration. It satisfies store.Config.
type Config struct {
	v *viper.Viper
}

var defaults = map[string]any{
	"path":             "~/.abcinema.db",
	"tmdb.key":         "",
	"tmdb.base":        "https://api.themoviedb.org/3",
	"tmdb.image_base":  "https://image.tmdb.org/t/p",
	"tmdb.rps":         20,
	"tmdb.retries":     2,
	"tmdb.timeout":     "10s",
	"tmdb.revalidate":  "1h",
	"tmdb.cache_size":  256,
	"omdb.key":         "42b62f24",
	"omdb.base":        "https://www.omdbapi.com",
	"omdb.revalidate":  "24h",
	"search.debounce":  "300ms",
	"search.min_chars": 2,
	"search.limit":     6,
	"recent.max":       6,
	"toast.visible":    "2.5s",
	"toast.exit":       "300ms",
	"toast.max":        3,
	"log.file":         "~/.abcinema.log",
}

// Load reads .env (if present), then the .abcinema config file found in
// $ABCINEMA_CONFIG_PATH, the working directory or $HOME. Environment
// variables prefixed ABCINEMA_ override both; nested keys use underscores,
// e.g. ABCINEMA_TMDB_KEY.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("config.dotenv_failed", "err", err)
	}

	v := viper.New()
	v.SetConfigName(".abcinema")
	if override := os.Getenv("ABCINEMA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	c := newConfig(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return c, nil
}

// FromMap builds a Config from explicit values on top of the defaults.
// Environment variables still apply.
func FromMap(values map[string]any) *Config {
	c := newConfig(viper.New())
	for k, val := range values {
		c.v.Set(k, val)
	}
	return c
}

func newConfig(v *viper.Viper) *Config {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("ABCINEMA")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return &Config{v: v}
}

var envReplacer = strings.NewReplacer(".", "_")

// Set overrides a key, e.g. from a command line flag.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// BasePath is the directory holding the local store.
func (c *Config) BasePath() string {
	return c.expand("path")
}

// LogFile is where the interactive UI writes its log.
func (c *Config) LogFile() string {
	return c.expand("log.file")
}

func (c *Config) TMDBKey() string { return c.v.GetString("tmdb.key") }
func (c *Config) TMDBBase() string { return c.v.GetString("tmdb.base") }
func (c *Config) TMDBImageBase() string { return c.v.GetString("tmdb.image_base") }
func (c *Config) TMDBRPS() int { return c.positive("tmdb.rps") }
func (c *Config) TMDBRetries() int { return c.v.GetInt("tmdb.retries") }
func (c *Config) TMDBCacheSize() int { return c.positive("tmdb.cache_size") }
func (c *Config) OMDbKey() string { return c.v.GetString("omdb.key") }
func (c *Config) OMDbBase() string { return c.v.GetString("omdb.base") }
func (c *Config) SearchMinChars() int { return c.positive("search.min_chars") }
func (c *Config) SearchLimit() int { return c.positive("search.limit") }
func (c *Config) RecentMax() int { return c.positive("recent.max") }
func (c *Config) ToastMax() int { return c.positive("toast.max") }
func (c *Config) TMDBTimeout() time.Duration { return c.duration("tmdb.timeout") }
func (c *Config) TMDBRevalidate() time.Duration { return c.duration("tmdb.revalidate") }
func (c *Config) OMDbRevalidate() time.Duration { return c.duration("omdb.revalidate") }
func (c *Config) SearchDebounce() time.Duration { return c.duration("search.debounce") }
func (c *Config) ToastVisible() time.Duration { return c.duration("toast.visible") }
func (c *Config) ToastExit() time.Duration { return c.duration("toast.exit") }

func (c *Config) expand(key string) string {
	raw := c.v.GetString(key)
	p, err := homedir.Expand(raw)
	if err != nil {
		slog.Warn("config.expand_failed", "key", key, "err", err)
		return raw
	}
	return p
}

// duration parses key, falling back to the default when the value is not a
// positive duration.
func (c *Config) duration(key string) time.Duration {
	raw := c.v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err == nil && d > 0 {
		return d
	}
	def, _ := time.ParseDuration(defaults[key].(string))
	slog.Warn("config.invalid_duration", "key", key, "value", raw, "default", def)
	return def
}

func (c *Config) positive(key string) int {
	n := c.v.GetInt(key)
	if n > 0 {
		return n
	}
	return defaults[key].(int)
}
