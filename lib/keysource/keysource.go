// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package keysource

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vaultd-foundation/vaultd/lib/identity"
)

const (
	privateKeyFile = "parent-signing-key"
	publicKeyFile  = "parent-signing-key.pub"
	sealedKeyFile  = "parent-signing-key.age"
)

// Source supplies the parent identity's signing keypair on demand.
type Source interface {
	// Parent returns the parent keypair. Errors are fatal to the
	// requesting operation only.
	Parent() (*identity.Keypair, error)
}

// File reads the parent keypair from raw key files in a state
// directory.
type File struct {
	// StateDir is the directory holding parent-signing-key and
	// parent-signing-key.pub.
	StateDir string
}

// Parent loads the parent keypair from the state directory. Returns
// an error if the private key file is missing or has an unexpected
// size.
func (f File) Parent() (*identity.Keypair, error) {
	privatePath := filepath.Join(f.StateDir, privateKeyFile)
	privateBytes, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("reading parent private key: %w", err)
	}
	if len(privateBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("parent private key has %d bytes, want %d", len(privateBytes), ed25519.PrivateKeySize)
	}
	return identity.FromPrivate(ed25519.PrivateKey(privateBytes))
}

// Save writes a parent keypair to the state directory: the raw
// private key with 0600 permissions and the public key's hex form
// with 0644.
func Save(stateDir string, keypair *identity.Keypair) error {
	privatePath := filepath.Join(stateDir, privateKeyFile)
	if err := os.WriteFile(privatePath, keypair.PrivateBytes(), 0600); err != nil {
		return fmt.Errorf("writing parent private key: %w", err)
	}
	return savePublic(stateDir, keypair)
}

// LoadOrGenerate loads an existing parent keypair from stateDir, or
// generates and saves a new one if the private key file doesn't
// exist. Returns the keypair and whether it was newly generated.
func LoadOrGenerate(stateDir string) (*identity.Keypair, bool, error) {
	keypair, err := File{StateDir: stateDir}.Parent()
	if err == nil {
		return keypair, false, nil
	}

	// Distinguish missing files (expected on first boot) from
	// corruption or permission problems (unexpected).
	privatePath := filepath.Join(stateDir, privateKeyFile)
	if _, statErr := os.Stat(privatePath); statErr == nil {
		return nil, false, err
	}

	keypair, err = identity.Generate()
	if err != nil {
		return nil, false, err
	}
	if err := Save(stateDir, keypair); err != nil {
		return nil, false, err
	}
	return keypair, true, nil
}

// savePublic writes the public key's hex text form for operators.
func savePublic(stateDir string, keypair *identity.Keypair) error {
	publicPath := filepath.Join(stateDir, publicKeyFile)
	if err := os.WriteFile(publicPath, []byte(keypair.Public().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing parent public key: %w", err)
	}
	return nil
}
