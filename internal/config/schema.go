package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Probes  ProbesConfig  `yaml:"probes"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ProbesConfig holds per-kind probe deadlines and defaults.
// A zero Duration falls back to the built-in deadline for that kind.
type ProbesConfig struct {
	PingTimeout    Duration `yaml:"ping_timeout,omitempty"`
	DNSTimeout     Duration `yaml:"dns_timeout,omitempty"`
	TCPTimeout     Duration `yaml:"tcp_timeout,omitempty"`
	TraceTimeout   Duration `yaml:"trace_timeout,omitempty"`
	DefaultTCPPort int      `yaml:"default_tcp_port"`
	HistorySize    int      `yaml:"history_size"`
}

// CaptureConfig holds passive link-discovery settings
type CaptureConfig struct {
	Window    Duration `yaml:"window"`
	Interface string   `yaml:"interface,omitempty"` // empty = auto-select
	SnapLen   int      `yaml:"snap_len"`
}

// LoggingConfig holds log level and file rotation settings.
// An empty File disables file logging (stderr only).
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
