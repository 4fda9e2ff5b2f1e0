// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the ephemeral signing material for active
// trading sessions, keyed by vault address.
//
// The registry is the only shared mutable resource in the session
// core. It is a dumb, synchronous cache: one mutex, three operations
// (Put, Get, Remove), no events. The lock covers only the map access
// itself, so concurrent requests for different vaults contend only
// for the nanoseconds of the map operation.
//
// The registry is an explicit, injectable object — constructed once
// at process start and passed to every handler — not package-global
// state. Entries are inserted after the ledger confirms session
// creation and removed on revoke; a background sweeper evicts entries
// whose recorded expiry has passed so long-running processes do not
// accumulate dead sessions. Nothing is persisted: a process restart
// loses all ephemeral signing material, permanently stranding any
// session created before the restart. That is intended behavior —
// stranded sessions expire on the ledger like any other.
package registry
