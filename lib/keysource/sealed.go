// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package keysource

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/vaultd-foundation/vaultd/lib/identity"
)

// Sealed reads an age-encrypted parent private key and decrypts it
// with an operator identity file. The plaintext key exists only in
// process memory.
type Sealed struct {
	// StateDir is the directory holding parent-signing-key.age.
	StateDir string

	// IdentityFile is the path to the age identity file
	// (AGE-SECRET-KEY-1... lines; # comments allowed).
	IdentityFile string
}

// Parent decrypts and loads the sealed parent keypair.
func (s Sealed) Parent() (*identity.Keypair, error) {
	ageIdentity, err := loadAgeIdentity(s.IdentityFile)
	if err != nil {
		return nil, err
	}

	sealedPath := filepath.Join(s.StateDir, sealedKeyFile)
	ciphertext, err := os.ReadFile(sealedPath)
	if err != nil {
		return nil, fmt.Errorf("reading sealed parent key: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(ciphertext), ageIdentity)
	if err != nil {
		return nil, fmt.Errorf("decrypting sealed parent key: %w", err)
	}
	privateBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted parent key: %w", err)
	}
	if len(privateBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("sealed parent key has %d bytes, want %d", len(privateBytes), ed25519.PrivateKeySize)
	}
	return identity.FromPrivate(ed25519.PrivateKey(privateBytes))
}

// Seal encrypts a parent keypair's private key to one or more age
// recipients and writes it to the state directory, alongside the
// public key's hex form. No plaintext private key file is written.
func Seal(stateDir string, keypair *identity.Keypair, recipientKeys []string) error {
	if len(recipientKeys) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(keypair.PrivateBytes()); err != nil {
		return fmt.Errorf("writing parent key to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing age encryption: %w", err)
	}

	sealedPath := filepath.Join(stateDir, sealedKeyFile)
	if err := os.WriteFile(sealedPath, ciphertext.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing sealed parent key: %w", err)
	}
	return savePublic(stateDir, keypair)
}

// loadAgeIdentity reads the first identity from an age identity file,
// skipping blank lines and # comments.
func loadAgeIdentity(path string) (*age.X25519Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading age identity file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ageIdentity, err := age.ParseX25519Identity(line)
		if err != nil {
			return nil, fmt.Errorf("parsing age identity: %w", err)
		}
		return ageIdentity, nil
	}
	return nil, fmt.Errorf("no identity found in %s", path)
}
