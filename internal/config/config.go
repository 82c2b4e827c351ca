// Package config loads and stores the softstore configuration.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete softstore configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
	Flatpak  FlatpakConfig  `toml:"flatpak"`
	Output   OutputConfig   `toml:"output"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// EscalationHelper wraps privileged system-backend commands.
	EscalationHelper string `toml:"escalation_helper"`

	// AutoConfirm skips confirmation prompts when true.
	AutoConfirm bool `toml:"auto_confirm"`
}

// TimeoutsConfig bounds backend subprocesses per operation kind. Queries
// finish quickly; installs may legitimately run much longer, so the two
// budgets are independent.
type TimeoutsConfig struct {
	QuerySeconds     int `toml:"query_timeout_seconds"`
	OperationSeconds int `toml:"operation_timeout_seconds"`
}

// FlatpakConfig contains sandbox-backend settings.
type FlatpakConfig struct {
	// DefaultRemote is the remote applications are installed from.
	DefaultRemote string `toml:"default_remote"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables command tracing.
	Verbose bool `toml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			EscalationHelper: "pkexec",
		},
		Timeouts: TimeoutsConfig{
			QuerySeconds:     60,
			OperationSeconds: 1800,
		},
		Flatpak: FlatpakConfig{
			DefaultRemote: "flathub",
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
		},
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// QueryTimeout returns the query budget as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Timeouts.QuerySeconds) * time.Second
}

// OperationTimeout returns the install/uninstall budget as a duration.
func (c *Config) OperationTimeout() time.Duration {
	return time.Duration(c.Timeouts.OperationSeconds) * time.Second
}

// ShouldUseColor returns true if colored output should be used.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
