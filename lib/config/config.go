// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings in
// time.ParseDuration syntax ("30m", "1h30m") or from plain integers
// interpreted as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string or integer seconds: %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String returns the time.Duration string form.
func (d Duration) String() string { return time.Duration(d).String() }

// Config is the vaultd daemon configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// StateDir is the directory holding the parent signing key.
	StateDir string `yaml:"state_dir"`

	// AgeIdentityFile, if set, switches the parent key source to the
	// sealed layout: the private key is read age-encrypted from the
	// state directory and decrypted with this identity file.
	AgeIdentityFile string `yaml:"age_identity_file"`

	// SessionDuration is the delegation window granted at session
	// creation.
	SessionDuration Duration `yaml:"session_duration"`

	// SweepInterval is how often expired session entries are evicted
	// from the in-memory registry.
	SweepInterval Duration `yaml:"sweep_interval"`

	// ShutdownTimeout is the grace period for in-flight HTTP
	// requests on shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration: a local listener and
// one-hour sessions.
func Default() Config {
	return Config{
		Listen:          "127.0.0.1:8080",
		StateDir:        "/var/lib/vaultd",
		SessionDuration: Duration(time.Hour),
		SweepInterval:   Duration(time.Minute),
		ShutdownTimeout: Duration(10 * time.Second),
	}
}

// Load reads a YAML config file and applies defaults for unset
// fields. The file must exist — a missing path is an error, not a
// silent fallback.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := loaded.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return loaded, nil
}

// Validate checks invariants that would otherwise surface as
// confusing runtime behavior.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir is empty")
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("session_duration must be positive, got %s", c.SessionDuration)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
