// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// vaultd-keygen generates the parent signing keypair for a vaultd
// state directory.
//
// By default the private key is written raw with 0600 permissions.
// With --seal-recipient, the private key is instead age-encrypted to
// the given X25519 recipients and no plaintext key touches disk; the
// daemon then needs --age-identity to use it.
package main
