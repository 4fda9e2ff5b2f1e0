// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity provides the signing identities vaultd operates on.
//
// An identity is an Ed25519 public key. Two kinds exist, distinguished
// only by lifecycle: the parent identity is long-lived and loaded from
// disk (see lib/keysource), while ephemeral identities are generated
// per trading session and live only in process memory (see
// lib/registry). The ledger cares about neither distinction — it
// verifies signatures against whatever public key a vault account
// records.
//
// PublicKey is a fixed-size value type so it can key maps directly.
// Its canonical text form is lowercase hex, used in JSON responses,
// logs, and CBOR payloads.
package identity
