// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Keypair is a signing-capable identity: a public key plus the
// exclusively-owned Ed25519 private key. The private key never leaves
// the Keypair — callers sign through the Sign method.
type Keypair struct {
	public  PublicKey
	private ed25519.PrivateKey
}

// Generate creates a new Ed25519 keypair from crypto/rand.
func Generate() (*Keypair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating Ed25519 keypair: %w", err)
	}
	wrapped, err := FromPublic(public)
	if err != nil {
		return nil, err
	}
	return &Keypair{public: wrapped, private: private}, nil
}

// FromPrivate wraps an existing Ed25519 private key. Returns an error
// if the key has an unexpected size.
func FromPrivate(private ed25519.PrivateKey) (*Keypair, error) {
	if len(private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key has %d bytes, want %d", len(private), ed25519.PrivateKeySize)
	}
	public, err := FromPublic(private.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &Keypair{public: public, private: private}, nil
}

// Public returns the verification key.
func (k *Keypair) Public() PublicKey {
	return k.public
}

// Sign returns the Ed25519 signature of message.
func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

// PrivateBytes returns the raw private key bytes for persistence.
// Only lib/keysource should call this — everything else signs through
// Sign and must never see the private key.
func (k *Keypair) PrivateBytes() []byte {
	return k.private
}
