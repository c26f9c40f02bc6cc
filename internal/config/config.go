// Package config provides configuration management for Lanterna.
//
// Everything has a working default: a missing config file is not an
// error, and a partial file only overrides the fields it names.
//
// Config file locations (priority order):
//  1. $LANTERNA_CONFIG
//  2. ./lanterna.yaml
//  3. ~/.config/lanterna/config.yaml
//  4. /etc/lanterna/config.yaml
//
// Environment variables (LANTERNA_*) are applied last and win over
// file values. See ApplyEnv.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8757,
		},
		Probes: ProbesConfig{
			PingTimeout:    Duration(5 * time.Second),
			DNSTimeout:     Duration(4 * time.Second),
			TCPTimeout:     Duration(8 * time.Second),
			TraceTimeout:   Duration(15 * time.Second),
			DefaultTCPPort: 80,
			HistorySize:    10,
		},
		Capture: CaptureConfig{
			Window:  Duration(20 * time.Second),
			SnapLen: 1600,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Probes.PingTimeout == 0 {
		c.Probes.PingTimeout = def.Probes.PingTimeout
	}
	if c.Probes.DNSTimeout == 0 {
		c.Probes.DNSTimeout = def.Probes.DNSTimeout
	}
	if c.Probes.TCPTimeout == 0 {
		c.Probes.TCPTimeout = def.Probes.TCPTimeout
	}
	if c.Probes.TraceTimeout == 0 {
		c.Probes.TraceTimeout = def.Probes.TraceTimeout
	}
	if c.Probes.DefaultTCPPort == 0 {
		c.Probes.DefaultTCPPort = def.Probes.DefaultTCPPort
	}
	if c.Probes.HistorySize == 0 {
		c.Probes.HistorySize = def.Probes.HistorySize
	}
	if c.Capture.Window == 0 {
		c.Capture.Window = def.Capture.Window
	}
	if c.Capture.SnapLen == 0 {
		c.Capture.SnapLen = def.Capture.SnapLen
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = def.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = def.Logging.MaxAgeDays
	}
}

// ApplyEnv overrides config values from LANTERNA_* environment variables.
// A .env file in the working directory is honored if present.
func (c *Config) ApplyEnv() {
	loadDotEnv()

	c.Server.Host = envString("LANTERNA_HOST", c.Server.Host)
	c.Server.Port = envInt("LANTERNA_PORT", c.Server.Port)
	c.Capture.Interface = envString("LANTERNA_CAPTURE_INTERFACE", c.Capture.Interface)
	c.Logging.Level = envString("LANTERNA_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = envString("LANTERNA_LOG_FILE", c.Logging.File)

	if v := os.Getenv("LANTERNA_CAPTURE_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Capture.Window = Duration(parsed)
		}
	}
}

// Addr returns the server listen address in host:port form
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s\n", c.Addr())
	summary += fmt.Sprintf("Probe timeouts: ping=%s dns=%s tnc=%s tracert=%s\n",
		c.Probes.PingTimeout.Duration(), c.Probes.DNSTimeout.Duration(),
		c.Probes.TCPTimeout.Duration(), c.Probes.TraceTimeout.Duration())
	summary += fmt.Sprintf("Capture window: %s", c.Capture.Window.Duration())
	if c.Capture.Interface != "" {
		summary += fmt.Sprintf(" (interface %s)", c.Capture.Interface)
	}

	return summary
}
