// Package config holds the tool configuration, loaded from file,
// environment and flags through viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Backend names for the transport selection.
const (
	BackendCLI = "cli"
	BackendSDK = "sdk"
)

// Config holds every tunable of the tool.
type Config struct {
	// Region and Profile select the AWS context for both backends.
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
	// Backend picks the transport, "cli" or "sdk".
	Backend string `mapstructure:"backend"`
	// CLIPath is the aws binary used by the cli backend.
	CLIPath string `mapstructure:"cli_path"`
	// PollIntervalSeconds is the initial wait between restart
	// observations.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`
	// AutoApprove skips interactive confirmation of destructive commands.
	AutoApprove bool `mapstructure:"auto_approve"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:             BackendCLI,
		CLIPath:             "aws",
		PollIntervalSeconds: 21,
		LogLevel:            "info",
	}
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// SetDefaults registers the built-in values with viper so that partial
// config files and flag sets fall back sensibly.
func SetDefaults() {
	d := Default()
	viper.SetDefault("region", d.Region)
	viper.SetDefault("profile", d.Profile)
	viper.SetDefault("backend", d.Backend)
	viper.SetDefault("cli_path", d.CLIPath)
	viper.SetDefault("poll_interval_seconds", d.PollIntervalSeconds)
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("auto_approve", d.AutoApprove)
}

// Load materializes the effective configuration from viper.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dir returns the directory searched for the config file.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ec2ctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ec2ctl"
	}
	return filepath.Join(home, ".config", "ec2ctl")
}
