// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package vault defines vault addressing and the vault account state
// machine.
//
// A vault is a custody account owned by exactly one parent identity.
// Its address is a pure function of that identity (DeriveAddress), so
// the address can always be re-derived server-side and never needs to
// be trusted from caller input.
//
// The account state machine has four transitions — create, deposit,
// trade, revoke — validated against an explicit clock reading. A
// session is valid iff now <= SessionExpiresAt; the deadline is
// inclusive. There is no stored "expired" state: an account past its
// deadline is distinguished from an active one only by evaluating the
// clock at access time. Revoke sets the deadline to now, which makes
// the session invalid for every subsequent deposit or trade without
// erasing position data.
//
// This package holds only the transition rules. Atomic application of
// transitions, fund movement, and signature verification live in
// lib/ledger.
package vault
