// Package config loads zpnr settings from defaults, an optional TOML file
// and ZPNR_* environment variables, in that order.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	"github.com/zarlcorp/zpnr/internal/pnr"
)

// Config holds generation defaults and logging settings.
type Config struct {
	MinAge        int    `toml:"min_age" env:"ZPNR_MIN_AGE, overwrite" validate:"gte=0"`
	MaxAge        int    `toml:"max_age" env:"ZPNR_MAX_AGE, overwrite" validate:"gtefield=MinAge"`
	Gender        string `toml:"gender" env:"ZPNR_GENDER, overwrite" validate:"omitempty,oneof=F M"`
	CorporateType string `toml:"corporate_type" env:"ZPNR_CORPORATE_TYPE, overwrite" validate:"omitempty,oneof=1 2 3 5 6 7 8 9"`

	LogLevel  string `toml:"log_level" env:"ZPNR_LOG_LEVEL, overwrite" validate:"oneof=debug info warn warning error"`
	LogFormat string `toml:"log_format" env:"ZPNR_LOG_FORMAT, overwrite" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() *Config {
	req := pnr.DefaultRequest()
	return &Config{
		MinAge:    req.MinAge,
		MaxAge:    req.MaxAge,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zpnr", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zpnr", "config.toml")
	}
	return filepath.Join(home, ".config", "zpnr", "config.toml")
}

// Load reads path and the process environment.
func Load(path string) (*Config, error) {
	return LoadWith(path, envconfig.OsLookuper())
}

// LoadWith reads path and then environment values from l. A missing file
// is not an error.
func LoadWith(path string, l envconfig.Lookuper) (*Config, error) {
	cfg := Default()

	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s %v (%s)", fieldKey(fe.Field()), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Request returns the generation parameters the settings describe.
func (c *Config) Request() pnr.Request {
	return pnr.Request{
		MinAge:        c.MinAge,
		MaxAge:        c.MaxAge,
		Gender:        pnr.Gender(c.Gender),
		CorporateType: c.CorporateType,
	}
}

// NewLogger creates a structured logger writing to w. When LogFormat is
// "json" it writes JSON lines, otherwise human-readable text.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// fieldKey maps a struct field name to its TOML key.
func fieldKey(field string) string {
	switch field {
	case "MinAge":
		return "min_age"
	case "MaxAge":
		return "max_age"
	case "Gender":
		return "gender"
	case "CorporateType":
		return "corporate_type"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	}
	return field
}
