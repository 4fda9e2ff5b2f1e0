// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/vaultd-foundation/vaultd/lib/clock"
	"github.com/vaultd-foundation/vaultd/lib/config"
	"github.com/vaultd-foundation/vaultd/lib/keysource"
	"github.com/vaultd-foundation/vaultd/lib/ledger"
	"github.com/vaultd-foundation/vaultd/lib/registry"
	"github.com/vaultd-foundation/vaultd/lib/session"
	"github.com/vaultd-foundation/vaultd/lib/vault"
	"github.com/vaultd-foundation/vaultd/lib/version"
	"github.com/vaultd-foundation/vaultd/lib/web"
)

// devFunds is the parent balance minted into the in-memory ledger at
// startup so that deposits have something to draw from. The ledger
// has no persistence; this is a development faucet, not custody.
const devFunds = 1_000_000_000

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath      string
		listen          string
		stateDir        string
		ageIdentityFile string
		sessionDuration time.Duration
		showVersion     bool
	)

	flagSet := pflag.NewFlagSet("vaultd", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (optional; flags override it)")
	flagSet.StringVar(&listen, "listen", "", "HTTP listen address")
	flagSet.StringVar(&stateDir, "state-dir", "", "directory holding the parent signing key")
	flagSet.StringVar(&ageIdentityFile, "age-identity", "", "age identity file for a sealed parent key")
	flagSet.DurationVar(&sessionDuration, "session-duration", 0, "delegation window granted at session create")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showVersion {
		fmt.Println("vaultd", version.Info())
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if ageIdentityFile != "" {
		cfg.AgeIdentityFile = ageIdentityFile
	}
	if sessionDuration != 0 {
		cfg.SessionDuration = config.Duration(sessionDuration)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var keys keysource.Source
	if cfg.AgeIdentityFile != "" {
		keys = keysource.Sealed{StateDir: cfg.StateDir, IdentityFile: cfg.AgeIdentityFile}
	} else {
		keys = keysource.File{StateDir: cfg.StateDir}
	}

	// Load the parent key once up front: a missing or corrupt key
	// should fail the daemon at startup, not the first request.
	parent, err := keys.Parent()
	if err != nil {
		return fmt.Errorf("loading parent signing key: %w", err)
	}

	clk := clock.Real()

	memory := ledger.NewMemory(clk)
	memory.Fund(parent.Public(), devFunds)

	sessions := registry.New()
	go sessions.RunSweeper(ctx, clk, cfg.SweepInterval.Std(), logger)

	service := session.New(session.Config{
		Keys:            keys,
		Ledger:          memory,
		Registry:        sessions,
		Clock:           clk,
		Logger:          logger,
		SessionDuration: cfg.SessionDuration.Std(),
	})

	server := web.NewServer(web.Config{
		Address:         cfg.Listen,
		Handler:         newHandler(service, logger),
		ShutdownTimeout: cfg.ShutdownTimeout.Std(),
		Logger:          logger,
	})

	logger.Info("vaultd starting",
		"version", version.Short(),
		"parent", parent.Public(),
		"vault", vault.DeriveAddress(parent.Public()),
		"listen", cfg.Listen,
		"session_duration", cfg.SessionDuration.Std(),
	)

	return server.Serve(ctx)
}
