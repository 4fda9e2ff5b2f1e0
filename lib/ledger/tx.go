// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/vaultd-foundation/vaultd/lib/codec"
	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/vault"
)

// Op names a vault transition.
type Op string

// The four vault transitions.
const (
	OpCreate  Op = "create"
	OpDeposit Op = "deposit"
	OpRevoke  Op = "revoke"
	OpTrade   Op = "trade"
)

// signatureSize is the fixed size of an Ed25519 signature.
const signatureSize = ed25519.SignatureSize // 64 bytes

// refDomainKey is the BLAKE3 key for transaction references, domain-
// separated from vault address derivation.
var refDomainKey = [32]byte{
	'v', 'a', 'u', 'l', 't', 'd', '.', 'l', 'e', 'd', 'g', 'e', 'r', '.', 't', 'x',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Payload is the signed body of a transaction. Field numbers are wire
// contract — never renumber. Unused arguments stay at their zero
// value (e.g., Amount on a trade).
type Payload struct {
	// Op is the vault transition to execute.
	Op Op `cbor:"1,keyasint"`

	// Vault is the target vault address. For every operation the
	// ledger re-derives the address from Parent and rejects a
	// mismatch — the field is part of the signed bytes so a relayer
	// cannot redirect a transaction, not a source of truth.
	Vault vault.Address `cbor:"2,keyasint"`

	// Parent is the vault's owning identity.
	Parent identity.PublicKey `cbor:"3,keyasint"`

	// Ephemeral is the delegated trading identity. Set on create
	// (the identity being delegated to) and trade (the claimed
	// signer, cross-checked against the account record).
	Ephemeral identity.PublicKey `cbor:"4,keyasint"`

	// DurationSeconds is the session length for create.
	DurationSeconds int64 `cbor:"5,keyasint"`

	// Amount is the custody funds moved by deposit.
	Amount uint64 `cbor:"6,keyasint"`

	// Size and Price are the position arguments for trade.
	Size  int64 `cbor:"7,keyasint"`
	Price int64 `cbor:"8,keyasint"`
}

// Ref is an opaque transaction reference returned on success.
type Ref string

// Errors returned while decoding envelopes.
var (
	ErrEnvelopeTooShort = errors.New("ledger: envelope too short for signature")
	ErrBadSignature     = errors.New("ledger: invalid Ed25519 signature")
)

// Sign encodes the payload canonically and appends the signer's
// 64-byte Ed25519 signature, producing the wire-format envelope.
func Sign(signer *identity.Keypair, payload *Payload) ([]byte, error) {
	encoded, err := codec.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ledger: encoding payload: %w", err)
	}

	signature := signer.Sign(encoded)

	envelope := make([]byte, len(encoded)+signatureSize)
	copy(envelope, encoded)
	copy(envelope[len(encoded):], signature)
	return envelope, nil
}

// decodeEnvelope splits an envelope into its decoded payload, the raw
// payload bytes the signature covers, and the signature itself. It
// does not verify the signature — the verifying key depends on the
// operation and, for trades, on ledger state.
func decodeEnvelope(envelope []byte) (*Payload, []byte, []byte, error) {
	if len(envelope) <= signatureSize {
		return nil, nil, nil, ErrEnvelopeTooShort
	}

	split := len(envelope) - signatureSize
	encoded := envelope[:split]
	signature := envelope[split:]

	var payload Payload
	if err := codec.Unmarshal(encoded, &payload); err != nil {
		return nil, nil, nil, fmt.Errorf("ledger: decoding payload: %w", err)
	}
	return &payload, encoded, signature, nil
}

// makeRef computes the transaction reference for an envelope: "tx-"
// followed by the first 12 hex characters of the envelope's keyed
// BLAKE3 hash. The signature bytes are included, so the same payload
// re-signed yields a distinct reference.
func makeRef(envelope []byte) Ref {
	hasher, err := blake3.NewKeyed(refDomainKey[:])
	if err != nil {
		panic("ledger: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(envelope)
	sum := hasher.Sum(nil)
	return Ref("tx-" + hex.EncodeToString(sum[:6]))
}
