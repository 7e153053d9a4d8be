// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultHost is the address the server binds to when none is configured.
	DefaultHost = "0.0.0.0"
	// DefaultPort is the port the server listens on when none is configured.
	DefaultPort = 3001
	// DefaultMaxUploadBytes caps the size of an uploaded SBOM.
	DefaultMaxUploadBytes int64 = 10 << 20
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Environment variables read by FromEnv.
const (
	EnvDebug           = "SBOM_REPORT_DEBUG"
	EnvHost            = "SBOM_REPORT_HOST"
	EnvPort            = "SBOM_REPORT_PORT"
	EnvMaxUploadBytes  = "SBOM_REPORT_MAX_UPLOAD_BYTES"
	EnvShutdownTimeout = "SBOM_REPORT_SHUTDOWN_TIMEOUT"
)

// Config holds the settings of the HTTP front-end. The conversion core never reads it.
type Config struct {
	Debug           bool     `json:"debug,omitempty"`
	Host            string   `json:"host,omitempty" validate:"required,hostname|ip"`
	Port            int      `json:"port,omitempty" validate:"min=1,max=65535"`
	MaxUploadBytes  int64    `json:"max_upload_bytes,omitempty" validate:"gt=0"`
	ShutdownTimeout Duration `json:"shutdown_timeout,omitempty" validate:"gte=0"`
}

// Duration is a time.Duration that reads from JSON as a string such as "15s".
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		ShutdownTimeout: Duration(DefaultShutdownTimeout),
	}
}

// FromEnv returns the defaults overridden by any SBOM_REPORT_* environment variables.
// Values that do not parse are ignored.
func FromEnv() Config {
	d := Defaults()
	return Config{
		Debug:           getEnvBool(EnvDebug, d.Debug),
		Host:            getEnvString(EnvHost, d.Host),
		Port:            getEnvInt(EnvPort, d.Port),
		MaxUploadBytes:  getEnvInt64(EnvMaxUploadBytes, d.MaxUploadBytes),
		ShutdownTimeout: Duration(getEnvDuration(EnvShutdownTimeout, time.Duration(d.ShutdownTimeout))),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// This is used to apply config file values over environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.ShutdownTimeout == 0 {
		result.ShutdownTimeout = defaults.ShutdownTimeout
	}

	// Bool fields: cannot distinguish unset from false, so either source enables debug
	result.Debug = result.Debug || defaults.Debug

	return result
}

// Addr is the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
