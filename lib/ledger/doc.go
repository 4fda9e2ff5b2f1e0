// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package ledger defines the transaction envelope vaultd submits and
// the Ledger collaborator that executes vault transitions.
//
// A transaction is a deterministically CBOR-encoded payload followed
// by a 64-byte Ed25519 signature over those payload bytes. Because
// the encoding is canonical (lib/codec), the signed bytes are
// reproducible and the signature binds the operation, the target
// vault, and every argument.
//
// The Ledger interface is the trust boundary: callers hand it a
// signed envelope and get back either an opaque transaction reference
// or a rejection. Rejections are final — vaultd never retries a
// ledger failure. Memory is the in-process implementation: it
// verifies the envelope signature against the signer the vault
// account authorizes for the operation, applies the lib/vault
// transition rules atomically under one lock, and moves custody funds
// for deposits.
package ledger
