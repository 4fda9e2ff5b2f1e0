// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package keysource supplies the parent identity's long-lived signing
// keypair.
//
// Two sources exist. File reads the raw Ed25519 private key from the
// state directory (0600, first-boot generation supported). Sealed
// reads an age-encrypted private key and decrypts it with an operator
// identity file, so the key at rest never touches disk in plaintext —
// use vaultd-keygen to produce either layout.
//
// A source failure (missing or corrupt material) is fatal to the
// operation that needed the key, not to the process: the session
// service converts it into a failed result and keeps serving.
package keysource
