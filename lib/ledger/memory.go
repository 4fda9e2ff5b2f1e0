// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/clock"
	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/vault"
)

// Errors returned by the in-memory ledger runtime, beyond the
// transition errors re-exported from lib/vault.
var (
	// ErrUnknownVault means the target vault has no account — the
	// operation arrived before create.
	ErrUnknownVault = errors.New("ledger: unknown vault")

	// ErrAddressMismatch means the envelope's vault address does not
	// equal the address derived from its parent identity. Either the
	// submitter trusted caller input or the payload was tampered
	// with (which the signature check would also catch).
	ErrAddressMismatch = errors.New("ledger: vault address does not match parent identity")

	// ErrInsufficientFunds means the parent's holdings cannot cover
	// the deposit amount.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrInvalidDuration means create asked for a non-positive
	// session duration.
	ErrInvalidDuration = errors.New("ledger: session duration must be positive")
)

// Memory is an in-process Ledger. All state — vault accounts and
// custody holdings — lives behind one mutex, so every submitted
// transaction is applied atomically: a transaction either fully
// executes or leaves no trace.
type Memory struct {
	clock clock.Clock

	mu          sync.Mutex
	accounts    map[vault.Address]*vault.Account
	parentFunds map[identity.PublicKey]uint64
	vaultFunds  map[vault.Address]uint64
}

// NewMemory creates an empty in-memory ledger reading time from clk.
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		panic("ledger.NewMemory: clock is required")
	}
	return &Memory{
		clock:       clk,
		accounts:    make(map[vault.Address]*vault.Account),
		parentFunds: make(map[identity.PublicKey]uint64),
		vaultFunds:  make(map[vault.Address]uint64),
	}
}

// Fund credits custody funds to a parent identity's holdings. This is
// the faucet for tests and local development — deposits move funds
// from here into the vault.
func (m *Memory) Fund(owner identity.PublicKey, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parentFunds[owner] += amount
}

// Submit verifies and applies one transaction envelope.
func (m *Memory) Submit(ctx context.Context, envelope []byte) (Ref, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload, signedBytes, signature, err := decodeEnvelope(envelope)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Every operation re-derives the vault address from the parent
	// identity. A caller-supplied address never reaches account
	// lookup.
	if vault.DeriveAddress(payload.Parent) != payload.Vault {
		return "", ErrAddressMismatch
	}

	now := m.clock.Now()

	switch payload.Op {
	case OpCreate:
		err = m.applyCreate(payload, signedBytes, signature, now)
	case OpDeposit:
		err = m.applyDeposit(payload, signedBytes, signature, now)
	case OpRevoke:
		err = m.applyRevoke(payload, signedBytes, signature, now)
	case OpTrade:
		err = m.applyTrade(payload, signedBytes, signature, now)
	default:
		err = fmt.Errorf("ledger: unknown operation %q", payload.Op)
	}
	if err != nil {
		return "", err
	}

	return makeRef(envelope), nil
}

// applyCreate initializes (or re-initializes) the vault account. Only
// the parent signs; the ephemeral identity is delegated to, not
// consulted. Existing custody holdings carry over across re-creation;
// account fields do not.
func (m *Memory) applyCreate(payload *Payload, signedBytes, signature []byte, now time.Time) error {
	if !payload.Parent.Verify(signedBytes, signature) {
		return ErrBadSignature
	}
	if payload.DurationSeconds <= 0 {
		return ErrInvalidDuration
	}
	if payload.Ephemeral.IsZero() {
		return errors.New("ledger: create requires an ephemeral identity")
	}

	duration := time.Duration(payload.DurationSeconds) * time.Second
	account := vault.NewAccount(payload.Parent, payload.Ephemeral, now, duration)
	m.accounts[payload.Vault] = &account
	return nil
}

func (m *Memory) applyDeposit(payload *Payload, signedBytes, signature []byte, now time.Time) error {
	account, ok := m.accounts[payload.Vault]
	if !ok {
		return ErrUnknownVault
	}
	if !payload.Parent.Verify(signedBytes, signature) {
		return ErrBadSignature
	}
	if err := account.AuthorizeDeposit(payload.Parent, now); err != nil {
		return err
	}

	if m.parentFunds[payload.Parent] < payload.Amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, m.parentFunds[payload.Parent], payload.Amount)
	}
	m.parentFunds[payload.Parent] -= payload.Amount
	m.vaultFunds[payload.Vault] += payload.Amount
	return nil
}

func (m *Memory) applyRevoke(payload *Payload, signedBytes, signature []byte, now time.Time) error {
	account, ok := m.accounts[payload.Vault]
	if !ok {
		return ErrUnknownVault
	}
	if !payload.Parent.Verify(signedBytes, signature) {
		return ErrBadSignature
	}
	return account.RevokeSession(payload.Parent, now)
}

// applyTrade verifies the signature against the ephemeral identity
// the account has on record — not the one the payload claims. The
// stored field is authoritative; a trade signed by any other key is
// an unauthorized signer, even if internally consistent.
func (m *Memory) applyTrade(payload *Payload, signedBytes, signature []byte, now time.Time) error {
	account, ok := m.accounts[payload.Vault]
	if !ok {
		return ErrUnknownVault
	}
	if !account.Ephemeral.Verify(signedBytes, signature) {
		return ErrBadSignature
	}
	return account.ApplyTrade(account.Ephemeral, payload.Size, payload.Price, now)
}

// AccountState returns a copy of the vault's account record, if it
// exists. For inspection and tests — mutating the copy has no effect
// on ledger state.
func (m *Memory) AccountState(address vault.Address) (vault.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[address]
	if !ok {
		return vault.Account{}, false
	}
	return *account, true
}

// ParentBalance returns the parent identity's uncustodied holdings.
func (m *Memory) ParentBalance(owner identity.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parentFunds[owner]
}

// VaultBalance returns the funds held in custody by the vault.
func (m *Memory) VaultBalance(address vault.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vaultFunds[address]
}
