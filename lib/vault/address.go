// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/vaultd-foundation/vaultd/lib/identity"
)

// Address is a 32-byte vault address: the BLAKE3 keyed hash of the
// owning parent identity under the vault domain key.
type Address [32]byte

// addressDomainKey is the 32-byte key for BLAKE3 keyed hashing of
// vault addresses. Domain separation ensures parent public key bytes
// hashed in other contexts can never collide with a vault address.
// The value is the ASCII encoding of the namespace and version tags
// ("vault", "v2"), zero-padded to 32 bytes — readable in hex dumps
// without sacrificing any cryptographic property. Changing it
// invalidates every existing vault address.
var addressDomainKey = [32]byte{
	'v', 'a', 'u', 'l', 't', 'd', '.', 'v', 'a', 'u', 'l', 't', '.', 'v', '2', 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DeriveAddress computes the vault address for a parent identity.
// Pure and deterministic: the same parent always yields the same
// address, and this function is the single source of truth for vault
// addressing. No write path may accept a caller-supplied address in
// its place.
func DeriveAddress(parent identity.PublicKey) Address {
	// NewKeyed fails only for a wrong key length, which the fixed-size
	// domain key rules out.
	hasher, err := blake3.NewKeyed(addressDomainKey[:])
	if err != nil {
		panic("vault: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(parent[:])

	var address Address
	copy(address[:], hasher.Sum(nil))
	return address
}

// ParseAddress parses a 64-character hex string into an Address.
func ParseAddress(hexString string) (Address, error) {
	var address Address
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return address, fmt.Errorf("parsing vault address: %w", err)
	}
	if len(decoded) != len(address) {
		return address, fmt.Errorf("vault address is %d bytes, want %d", len(decoded), len(address))
	}
	copy(address[:], decoded)
	return address, nil
}

// String returns the canonical lowercase hex form.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler. Addresses serialize
// as hex text in both JSON and CBOR.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
