// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/vault"
)

var testEpoch = time.Unix(1_700_000_000, 0)

func testSession(t *testing.T) (vault.Address, *identity.Keypair) {
	t.Helper()
	parent, err := identity.Generate()
	if err != nil {
		t.Fatalf("identity.Generate: %v", err)
	}
	ephemeral, err := identity.Generate()
	if err != nil {
		t.Fatalf("identity.Generate: %v", err)
	}
	return vault.DeriveAddress(parent.Public()), ephemeral
}

func TestPutGetRemove(t *testing.T) {
	r := New()
	address, keypair := testSession(t)

	r.Put(address, keypair, testEpoch.Add(time.Hour))

	got, err := r.Get(address)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != keypair {
		t.Error("Get returned a different keypair reference")
	}

	r.Remove(address)
	if _, err := r.Get(address); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Remove: %v, want ErrNotFound", err)
	}
}

func TestGetMissing(t *testing.T) {
	r := New()
	address, _ := testSession(t)
	if _, err := r.Get(address); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty registry: %v, want ErrNotFound", err)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	r := New()
	address, _ := testSession(t)
	r.Remove(address)
	r.Remove(address)
}

func TestPutOverwrites(t *testing.T) {
	r := New()
	address, first := testSession(t)
	_, second := testSession(t)

	r.Put(address, first, testEpoch.Add(time.Hour))
	r.Put(address, second, testEpoch.Add(2*time.Hour))

	got, err := r.Get(address)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != second {
		t.Error("Put did not overwrite the existing entry")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", r.Len())
	}
}

func TestEntriesAreIsolatedByAddress(t *testing.T) {
	r := New()
	addressA, keypairA := testSession(t)
	addressB, keypairB := testSession(t)

	r.Put(addressA, keypairA, testEpoch.Add(time.Hour))
	r.Put(addressB, keypairB, testEpoch.Add(time.Hour))

	gotA, err := r.Get(addressA)
	if err != nil {
		t.Fatalf("Get(A): %v", err)
	}
	gotB, err := r.Get(addressB)
	if err != nil {
		t.Fatalf("Get(B): %v", err)
	}
	if gotA == gotB {
		t.Error("two vaults share one ephemeral keypair")
	}
	if gotA.Public() != keypairA.Public() || gotB.Public() != keypairB.Public() {
		t.Error("entries crossed between vault addresses")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			address, keypair := testSession(t)
			r.Put(address, keypair, testEpoch.Add(time.Hour))
			got, err := r.Get(address)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			if got.Public() != keypair.Public() {
				t.Error("observed another session's keypair")
			}
			r.Remove(address)
		}()
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Errorf("Len() = %d after all removes, want 0", r.Len())
	}
}

func TestSweepEvictsOnlyExpired(t *testing.T) {
	r := New()
	expired, expiredKeypair := testSession(t)
	live, liveKeypair := testSession(t)
	atDeadline, atDeadlineKeypair := testSession(t)

	now := testEpoch.Add(time.Hour)
	r.Put(expired, expiredKeypair, now.Add(-time.Second))
	r.Put(live, liveKeypair, now.Add(time.Hour))
	r.Put(atDeadline, atDeadlineKeypair, now)

	if evicted := r.Sweep(now); evicted != 1 {
		t.Errorf("Sweep evicted %d entries, want 1", evicted)
	}

	if _, err := r.Get(expired); !errors.Is(err, ErrNotFound) {
		t.Error("expired entry survived sweep")
	}
	if _, err := r.Get(live); err != nil {
		t.Error("live entry was swept")
	}
	// Inclusive deadline: still valid at the exact expiry instant,
	// so the signing material must remain reachable.
	if _, err := r.Get(atDeadline); err != nil {
		t.Error("entry at its exact deadline was swept")
	}
}
