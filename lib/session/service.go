// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/clock"
	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/keysource"
	"github.com/vaultd-foundation/vaultd/lib/ledger"
	"github.com/vaultd-foundation/vaultd/lib/registry"
	"github.com/vaultd-foundation/vaultd/lib/vault"
)

// Result is the uniform outcome of every session operation. On
// failure, OK is false, TxOrError carries a human-readable message,
// and the identity fields are empty.
type Result struct {
	OK        bool   `json:"ok"`
	Parent    string `json:"parent"`
	Ephemeral string `json:"ephemeral"`
	Vault     string `json:"vault"`
	TxOrError string `json:"tx_or_error"`
}

// Service executes session operations against a ledger. Construct
// once with New and share across request handlers — the registry it
// owns a reference to is the only shared mutable state.
type Service struct {
	keys     keysource.Source
	ledger   ledger.Ledger
	registry *registry.Registry
	clock    clock.Clock
	logger   *slog.Logger
	duration time.Duration
}

// Config configures a Service.
type Config struct {
	// Keys supplies the parent signing keypair. Required.
	Keys keysource.Source

	// Ledger executes vault transitions. Required.
	Ledger ledger.Ledger

	// Registry holds ephemeral session keys. Required.
	Registry *registry.Registry

	// Clock provides the time used for registry expiry bookkeeping.
	// Required. Session validity itself is always the ledger's call.
	Clock clock.Clock

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// SessionDuration is the delegation window granted at create.
	// Defaults to one hour if zero.
	SessionDuration time.Duration
}

// New creates a Service.
func New(config Config) *Service {
	if config.Keys == nil {
		panic("session.Service: Keys is required")
	}
	if config.Ledger == nil {
		panic("session.Service: Ledger is required")
	}
	if config.Registry == nil {
		panic("session.Service: Registry is required")
	}
	if config.Clock == nil {
		panic("session.Service: Clock is required")
	}
	if config.Logger == nil {
		panic("session.Service: Logger is required")
	}

	duration := config.SessionDuration
	if duration == 0 {
		duration = time.Hour
	}

	return &Service{
		keys:     config.Keys,
		ledger:   config.Ledger,
		registry: config.Registry,
		clock:    config.Clock,
		logger:   config.Logger,
		duration: duration,
	}
}

// CreateSession generates a fresh ephemeral identity, creates (or
// re-creates) the parent's vault on the ledger with a bounded
// delegation window, and registers the ephemeral signing material
// under the derived vault address.
//
// The registry insert happens only after the ledger confirms the
// create, so a rejected create cannot leave signing material behind
// for a vault that does not exist.
func (s *Service) CreateSession(ctx context.Context) Result {
	parent, err := s.keys.Parent()
	if err != nil {
		return s.failure("create", fmt.Errorf("loading parent key: %w", err))
	}

	address := vault.DeriveAddress(parent.Public())

	ephemeral, err := identity.Generate()
	if err != nil {
		return s.failure("create", fmt.Errorf("generating ephemeral identity: %w", err))
	}

	envelope, err := ledger.Sign(parent, &ledger.Payload{
		Op:              ledger.OpCreate,
		Vault:           address,
		Parent:          parent.Public(),
		Ephemeral:       ephemeral.Public(),
		DurationSeconds: int64(s.duration / time.Second),
	})
	if err != nil {
		return s.failure("create", err)
	}

	ref, err := s.ledger.Submit(ctx, envelope)
	if err != nil {
		return s.failure("create", err)
	}

	s.registry.Put(address, ephemeral, s.clock.Now().Add(s.duration))

	s.logger.Info("session created",
		"vault", address,
		"ephemeral", ephemeral.Public(),
		"expires_in", s.duration,
		"tx", ref,
	)
	return Result{
		OK:        true,
		Parent:    parent.Public().String(),
		Ephemeral: ephemeral.Public().String(),
		Vault:     address.String(),
		TxOrError: string(ref),
	}
}

// Deposit moves amount of the parent's custody funds into the vault.
// The target address is re-derived from the parent identity; the
// caller-supplied address is informational only and never used for
// the operation.
func (s *Service) Deposit(ctx context.Context, amount uint64, callerVault string) Result {
	parent, err := s.keys.Parent()
	if err != nil {
		return s.failure("deposit", fmt.Errorf("loading parent key: %w", err))
	}

	address := vault.DeriveAddress(parent.Public())
	s.noteCallerAddress("deposit", callerVault, address)

	envelope, err := ledger.Sign(parent, &ledger.Payload{
		Op:     ledger.OpDeposit,
		Vault:  address,
		Parent: parent.Public(),
		Amount: amount,
	})
	if err != nil {
		return s.failure("deposit", err)
	}

	ref, err := s.ledger.Submit(ctx, envelope)
	if err != nil {
		return s.failure("deposit", err)
	}

	s.logger.Info("deposit submitted", "vault", address, "amount", amount, "tx", ref)
	return Result{
		OK:        true,
		Parent:    parent.Public().String(),
		Vault:     address.String(),
		TxOrError: string(ref),
	}
}

// Trade places (or replaces) the vault's position, signed by the
// session's ephemeral identity. Fails with a session-not-found
// message if no ephemeral material is registered for the parent's
// vault — trade before create, or after revoke.
func (s *Service) Trade(ctx context.Context, callerVault string, size, price int64) Result {
	parent, err := s.keys.Parent()
	if err != nil {
		return s.failure("trade", fmt.Errorf("loading parent key: %w", err))
	}

	address := vault.DeriveAddress(parent.Public())
	s.noteCallerAddress("trade", callerVault, address)

	ephemeral, err := s.registry.Get(address)
	if err != nil {
		return s.failure("trade", fmt.Errorf("%w for vault %s", err, address))
	}

	envelope, err := ledger.Sign(ephemeral, &ledger.Payload{
		Op:        ledger.OpTrade,
		Vault:     address,
		Parent:    parent.Public(),
		Ephemeral: ephemeral.Public(),
		Size:      size,
		Price:     price,
	})
	if err != nil {
		return s.failure("trade", err)
	}

	ref, err := s.ledger.Submit(ctx, envelope)
	if err != nil {
		return s.failure("trade", err)
	}

	s.logger.Info("trade submitted", "vault", address, "size", size, "price", price, "tx", ref)
	return Result{
		OK:        true,
		Parent:    parent.Public().String(),
		Ephemeral: ephemeral.Public().String(),
		Vault:     address.String(),
		TxOrError: string(ref),
	}
}

// Revoke immediately ends the session for the parent's vault and
// drops its ephemeral signing material from the registry. The caller
// names a vault address, but it must equal the one derived from the
// parent identity — a parent can only ever revoke its own vault.
//
// The registry entry is removed only after the ledger confirms the
// revoke, so a failed (e.g. timed-out) revoke leaves the session
// usable rather than half-dead.
func (s *Service) Revoke(ctx context.Context, callerVault string) Result {
	claimed, err := vault.ParseAddress(callerVault)
	if err != nil {
		return s.failure("revoke", fmt.Errorf("malformed vault address: %w", err))
	}

	parent, err := s.keys.Parent()
	if err != nil {
		return s.failure("revoke", fmt.Errorf("loading parent key: %w", err))
	}

	address := vault.DeriveAddress(parent.Public())
	if claimed != address {
		return s.failure("revoke", fmt.Errorf("vault %s does not belong to this parent", claimed))
	}

	envelope, err := ledger.Sign(parent, &ledger.Payload{
		Op:     ledger.OpRevoke,
		Vault:  address,
		Parent: parent.Public(),
	})
	if err != nil {
		return s.failure("revoke", err)
	}

	ref, err := s.ledger.Submit(ctx, envelope)
	if err != nil {
		return s.failure("revoke", err)
	}

	s.registry.Remove(address)

	s.logger.Info("session revoked", "vault", address, "tx", ref)
	return Result{
		OK:        true,
		Parent:    parent.Public().String(),
		Vault:     address.String(),
		TxOrError: string(ref),
	}
}

// failure logs the error and folds it into the uniform failure shape.
// Ledger rejections pass through verbatim — they are already
// user-facing and are never retried here.
func (s *Service) failure(operation string, err error) Result {
	s.logger.Error("session operation failed", "operation", operation, "error", err)
	return Result{TxOrError: err.Error()}
}

// noteCallerAddress logs when a caller-supplied vault address differs
// from the derived one. The supplied value is informational — the
// operation always uses the derived address — but a mismatch usually
// means a confused or stale client worth surfacing in logs.
func (s *Service) noteCallerAddress(operation, supplied string, derived vault.Address) {
	if supplied == "" || supplied == derived.String() {
		return
	}
	s.logger.Warn("caller-supplied vault address ignored",
		"operation", operation,
		"supplied", supplied,
		"derived", derived,
	)
}
