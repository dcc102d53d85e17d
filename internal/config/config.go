package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "https://qiita.com"
	defaultUserID  = "kaleidot725"
	defaultTimeout = 30 * time.Second
)

// Config holds application configuration.
type Config struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	UserID  string        `yaml:"user_id" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	Log     LogConfig     `yaml:"log"`
}

// LogConfig controls the slog handler built by NewLogger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	// File receives log output while the TUI owns the terminal.
	File string `yaml:"file"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		BaseURL: defaultBaseURL,
		UserID:  defaultUserID,
		Timeout: defaultTimeout,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   defaultLogFile(),
		},
	}
}

// Dir returns ~/.qiitaprofile.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".qiitaprofile"), nil
}

func defaultLogFile() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "debug.log")
}

func defaultConfigFile() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load builds the configuration using precedence: env var > config file > default.
// The file path comes from QIITAPROFILE_CONFIG, else ~/.qiitaprofile/config.yaml;
// a missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("QIITAPROFILE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return c.decode(f, path)
}

func (c *Config) decode(r io.Reader, name string) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config.Load: parse %s: %w", name, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("QIITA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("QIITA_USER_ID"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("QIITA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config.Load: QIITA_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("QIITAPROFILE_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("QIITAPROFILE_LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("QIITAPROFILE_LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config.Validate: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config.Validate: %w", err)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a slog.Logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OpenLogFile opens Log.File for appending, creating its directory. An
// empty File yields io.Discard.
func (c *Config) OpenLogFile() (io.WriteCloser, error) {
	if c.Log.File == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Log.File), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
