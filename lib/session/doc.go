// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package session orchestrates delegated trading sessions.
//
// The Service exposes the four operations of the session lifecycle —
// CreateSession, Deposit, Revoke, Trade — each following the same
// shape: re-derive the vault address from the parent identity, touch
// the registry as needed, build and sign a transition, submit it to
// the ledger, and fold the outcome into a uniform Result.
//
// Two rules hold everywhere. First, write operations never trust a
// caller-supplied vault address: the address is a pure function of
// the parent identity and is re-derived server-side (Revoke accepts
// an address but verifies it against the derived one). Second, ledger
// rejections are final: they are surfaced verbatim in the Result and
// never retried — an expired session does not become valid on retry.
//
// CreateSession registers the ephemeral signing material only after
// the ledger confirms the vault exists, so a failed create leaves no
// orphaned registry entry.
package session
