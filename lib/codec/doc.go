// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides vaultd's standard CBOR encoding configuration.
//
// Ledger transactions are signed over their encoded payload bytes, so
// the encoding must be canonical: two encodings of the same logical
// payload must be byte-identical or signatures would not be
// reproducible or verifiable. The encoder therefore uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items.
//
// JSON is used only at the HTTP boundary; everything that crosses the
// ledger interface or is hashed into a transaction reference goes
// through this package.
package codec
