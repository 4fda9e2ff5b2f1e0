// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// PublicKey is a 32-byte Ed25519 public verification key. The zero
// value means "no identity" (e.g., a vault account before creation).
type PublicKey [ed25519.PublicKeySize]byte

// FromPublic converts a standard library Ed25519 public key. Returns
// an error if the key has an unexpected size.
func FromPublic(key ed25519.PublicKey) (PublicKey, error) {
	var public PublicKey
	if len(key) != ed25519.PublicKeySize {
		return public, fmt.Errorf("public key has %d bytes, want %d", len(key), ed25519.PublicKeySize)
	}
	copy(public[:], key)
	return public, nil
}

// Parse parses a 64-character hex string into a PublicKey.
func Parse(hexString string) (PublicKey, error) {
	var public PublicKey
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return public, fmt.Errorf("parsing identity: %w", err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return public, fmt.Errorf("identity is %d bytes, want %d", len(decoded), ed25519.PublicKeySize)
	}
	copy(public[:], decoded)
	return public, nil
}

// IsZero reports whether the key is the zero value.
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// Verify reports whether signature is a valid Ed25519 signature of
// message under this key.
func (p PublicKey) Verify(message, signature []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(p[:]), message, signature)
}

// String returns the canonical lowercase hex form.
func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// MarshalText implements encoding.TextMarshaler. Identities serialize
// as hex text in both JSON and CBOR.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
