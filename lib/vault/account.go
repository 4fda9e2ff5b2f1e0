// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"errors"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/identity"
)

// Errors returned by account transitions.
var (
	// ErrSessionExpired means the clock precondition failed: the
	// current time is past the session's inclusive deadline. Expected
	// and user-facing; never retried.
	ErrSessionExpired = errors.New("vault: session expired")

	// ErrUnauthorizedSigner means the transition was signed by an
	// identity other than the one the account authorizes for it.
	ErrUnauthorizedSigner = errors.New("vault: unauthorized signer")
)

// Account is the ledger-resident state of one vault. Exactly one
// exists per parent identity — the address derivation makes a second
// one unreachable.
type Account struct {
	// Parent is the owning identity: the only signer that can
	// create, deposit, or revoke.
	Parent identity.PublicKey

	// Ephemeral is the currently delegated trading identity. This
	// field is authoritative — a trade must be signed by exactly
	// this key, regardless of what the submitter claims.
	Ephemeral identity.PublicKey

	// SessionExpiresAt is the inclusive deadline (unix seconds) for
	// the ephemeral identity's authority. A session is valid iff
	// now <= SessionExpiresAt.
	SessionExpiresAt int64

	// PositionSize is the current risk position. Overwritten by each
	// trade, never accumulated.
	PositionSize int64

	// EntryPrice is the price associated with the current position.
	EntryPrice int64
}

// NewAccount applies the create transition: it initializes every
// field, delegating authority to ephemeral until now + duration.
// Re-creating an existing vault goes through NewAccount too — the
// previous ephemeral identity, expiry, and position are all replaced.
func NewAccount(parent, ephemeral identity.PublicKey, now time.Time, duration time.Duration) Account {
	return Account{
		Parent:           parent,
		Ephemeral:        ephemeral,
		SessionExpiresAt: now.Unix() + int64(duration/time.Second),
	}
}

// SessionValidAt reports whether the session is valid at the given
// time. The deadline is inclusive: the session is still valid at the
// instant of expiry itself. Sub-second precision is discarded, same
// as the unix-seconds resolution the deadline is stored at.
func (a *Account) SessionValidAt(now time.Time) bool {
	return now.Unix() <= a.SessionExpiresAt
}

// AuthorizeDeposit validates the deposit transition: the signer must
// be the parent and the session must not have expired. The account
// itself does not change on deposit — fund movement is the ledger's
// concern.
func (a *Account) AuthorizeDeposit(signer identity.PublicKey, now time.Time) error {
	if signer != a.Parent {
		return ErrUnauthorizedSigner
	}
	if !a.SessionValidAt(now) {
		return ErrSessionExpired
	}
	return nil
}

// ApplyTrade applies the trade transition: the signer must be the
// delegated ephemeral identity and the session must not have expired.
// The position is overwritten — no accumulation, no risk limits, no
// price validation. This records exposure; it does not enforce margin.
func (a *Account) ApplyTrade(signer identity.PublicKey, size, price int64, now time.Time) error {
	if !a.SessionValidAt(now) {
		return ErrSessionExpired
	}
	if signer != a.Ephemeral {
		return ErrUnauthorizedSigner
	}

	a.PositionSize = size
	a.EntryPrice = price
	return nil
}

// RevokeSession applies the revoke transition: the signer must be the
// parent. The deadline is set to now, invalidating the session for
// every subsequent deposit and trade. Revocation is monotonic — only
// a fresh create can grant authority again. Position data is kept.
//
// Revoking an already-expired or already-revoked session succeeds; the
// deadline only ever moves backward or stays.
func (a *Account) RevokeSession(signer identity.PublicKey, now time.Time) error {
	if signer != a.Parent {
		return ErrUnauthorizedSigner
	}
	if now.Unix() < a.SessionExpiresAt {
		a.SessionExpiresAt = now.Unix()
	}
	return nil
}
