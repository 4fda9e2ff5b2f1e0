// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time operations for testability.
//
// Session validity in vaultd is a pure function of the current time
// (a session is valid iff now <= its expiry), so every component that
// evaluates expiry — the ledger runtime, the registry sweeper, the
// session service — takes a Clock instead of calling the time package
// directly. Production code injects Real(); tests inject Fake() and
// advance time explicitly, which makes boundary conditions like
// "exactly at expiry" deterministic.
package clock
