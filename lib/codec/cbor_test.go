// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type testPayload struct {
	Op     string `cbor:"1,keyasint"`
	Vault  string `cbor:"2,keyasint"`
	Amount uint64 `cbor:"3,keyasint"`
}

func TestMarshalDeterministic(t *testing.T) {
	payload := testPayload{Op: "deposit", Vault: "abc123", Amount: 1_000_000}

	first, err := Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("two encodings of the same payload differ:\n%x\n%x", first, second)
	}
}

func TestRoundTrip(t *testing.T) {
	payload := testPayload{Op: "trade", Vault: "def456", Amount: 42}

	data, err := Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded testPayload
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != payload {
		t.Errorf("round trip = %+v, want %+v", decoded, payload)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	// Encode a superset and decode into a struct missing a field.
	superset := struct {
		Op    string `cbor:"1,keyasint"`
		Vault string `cbor:"2,keyasint"`
		Extra string `cbor:"9,keyasint"`
	}{Op: "revoke", Vault: "abc", Extra: "future"}

	data, err := Marshal(superset)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded testPayload
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if decoded.Op != "revoke" || decoded.Vault != "abc" {
		t.Errorf("decoded = %+v, want Op=revoke Vault=abc", decoded)
	}
}
