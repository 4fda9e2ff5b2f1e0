// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/clock"
)

// RunSweeper evicts expired session entries every interval until ctx
// is cancelled. Eviction is garbage collection, not enforcement: the
// ledger rejects expired sessions regardless, the sweeper only keeps
// registry memory bounded across many short sessions.
func (r *Registry) RunSweeper(ctx context.Context, clk clock.Clock, interval time.Duration, logger *slog.Logger) {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if evicted := r.Sweep(now); evicted > 0 {
				logger.Info("swept expired sessions",
					"evicted", evicted,
					"remaining", r.Len(),
				)
			}
		}
	}
}
