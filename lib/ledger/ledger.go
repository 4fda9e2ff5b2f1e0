// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import "context"

// Ledger accepts signed transaction envelopes and executes vault
// transitions atomically. Implementations return either an opaque
// transaction reference or a rejection.
//
// Rejections are non-retriable by design: the session service
// surfaces them verbatim to the caller and never resubmits. An
// expired session does not become valid by retrying, and a signature
// mismatch does not fix itself.
type Ledger interface {
	// Submit verifies and applies one transaction. The call is a
	// blocking, synchronous round trip; cancellation and timeouts
	// come from ctx.
	Submit(ctx context.Context, envelope []byte) (Ref, error)
}
