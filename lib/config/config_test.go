// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaultd.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "listen: \":9000\"\n")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", loaded.Listen)
	}
	if loaded.SessionDuration.Std() != time.Hour {
		t.Errorf("SessionDuration = %s, want default 1h", loaded.SessionDuration)
	}
	if loaded.SweepInterval.Std() != time.Minute {
		t.Errorf("SweepInterval = %s, want default 1m", loaded.SweepInterval)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"listen: \"0.0.0.0:8443\"",
		"state_dir: /srv/vaultd",
		"age_identity_file: /srv/vaultd/operator.age-identity",
		"session_duration: 30m",
		"sweep_interval: 5m",
		"shutdown_timeout: 3s",
	}, "\n"))

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.StateDir != "/srv/vaultd" {
		t.Errorf("StateDir = %q", loaded.StateDir)
	}
	if loaded.AgeIdentityFile != "/srv/vaultd/operator.age-identity" {
		t.Errorf("AgeIdentityFile = %q", loaded.AgeIdentityFile)
	}
	if loaded.SessionDuration.Std() != 30*time.Minute {
		t.Errorf("SessionDuration = %s, want 30m", loaded.SessionDuration)
	}
	if loaded.ShutdownTimeout.Std() != 3*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 3s", loaded.ShutdownTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded, want error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative duration": "session_duration: -5m\n",
		"zero sweep":        "sweep_interval: 0s\n",
		"empty listen":      "listen: \"\"\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: Load succeeded, want error", name)
		}
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}
