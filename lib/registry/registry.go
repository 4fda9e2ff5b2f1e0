// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/vault"
)

// ErrNotFound means no session entry exists for the vault address —
// trade attempted before create, or after revoke removed the entry.
var ErrNotFound = errors.New("registry: session not found")

// Registry maps vault addresses to the signing material of their
// active session. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[vault.Address]entry
}

type entry struct {
	keypair *identity.Keypair

	// expiresAt mirrors the session deadline recorded on the ledger
	// at insert time. Only the sweeper reads it — validity decisions
	// are always the ledger's.
	expiresAt time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[vault.Address]entry)}
}

// Put inserts or overwrites the session entry for a vault. The
// keypair reference is shared, not copied — the registry and any
// in-flight trade signing with it see the same material.
func (r *Registry) Put(address vault.Address, keypair *identity.Keypair, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[address] = entry{keypair: keypair, expiresAt: expiresAt}
}

// Get returns the session keypair for a vault, or ErrNotFound.
func (r *Registry) Get(address vault.Address) (*identity.Keypair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[address]
	if !ok {
		return nil, ErrNotFound
	}
	return existing.keypair, nil
}

// Remove deletes the session entry for a vault. Idempotent — removing
// an absent key is not an error.
func (r *Registry) Remove(address vault.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, address)
}

// Len returns the number of held sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes entries whose recorded expiry is strictly before now
// and returns how many were evicted. An entry at its exact deadline
// is kept: the session is still valid at that instant (inclusive
// deadline), so its signing material must remain reachable.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for address, existing := range r.entries {
		if existing.expiresAt.Before(now) {
			delete(r.entries, address)
			evicted++
		}
	}
	return evicted
}
