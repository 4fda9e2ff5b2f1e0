// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for vaultd.
//
// Configuration is a single YAML file named explicitly with the
// --config flag. There are no fallbacks and no automatic discovery —
// deterministic, auditable configuration with no hidden overrides.
// Everything has a default, so an empty file (or none, for the
// built-in defaults) yields a working local setup.
package config
