package dwm1001

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for session configuration. The reset settle delay was
// experimentally determined against DWM1001-DEV hardware.
const (
	DefaultBaudRate     = 115200
	DefaultShellTimeout = 3 * time.Second
	defaultResetDelay   = 100 * time.Millisecond
	probeTimeout        = time.Second
)

// Config holds configuration for creating a session with a DWM1001 node.
// All settings are explicit; the package keeps no ambient serial state.
type Config struct {
	// Transport is the underlying communication transport.
	// If nil, Port must be specified to open a serial connection.
	Transport Transport

	// Port is the serial port path (e.g. "/dev/ttyACM0").
	// Ignored if Transport is provided.
	Port string

	// BaudRate is the communication speed. Default is 115200.
	BaudRate int

	// ShellTimeout bounds how long a command waits for the shell prompt.
	// Default is 3 seconds.
	ShellTimeout time.Duration

	// ResetDelay is the settle time after a reset command.
	// Default is 100ms.
	ResetDelay time.Duration

	// Logger receives session diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ShellTimeout == 0 {
		c.ShellTimeout = DefaultShellTimeout
	}
	if c.ResetDelay == 0 {
		c.ResetDelay = defaultResetDelay
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// fileConfig is the on-disk YAML schema. Durations are written in Go
// notation ("3s", "100ms").
type fileConfig struct {
	Port         string `yaml:"port"`
	BaudRate     int    `yaml:"baud_rate"`
	ShellTimeout string `yaml:"shell_timeout"`
	ResetDelay   string `yaml:"reset_delay"`
}

// LoadConfig reads a YAML device profile from path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, err
	}

	if fc.Port == "" {
		return Config{}, fmt.Errorf("port is required")
	}
	if fc.BaudRate < 0 {
		return Config{}, fmt.Errorf("baud_rate must be positive, got %d", fc.BaudRate)
	}

	cfg := Config{
		Port:     fc.Port,
		BaudRate: fc.BaudRate,
	}
	if fc.ShellTimeout != "" {
		cfg.ShellTimeout, err = time.ParseDuration(fc.ShellTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid shell_timeout: %w", err)
		}
	}
	if fc.ResetDelay != "" {
		cfg.ResetDelay, err = time.ParseDuration(fc.ResetDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid reset_delay: %w", err)
		}
	}
	cfg.applyDefaults()

	return cfg, nil
}
