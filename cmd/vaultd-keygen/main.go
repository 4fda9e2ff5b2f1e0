// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/keysource"
	"github.com/vaultd-foundation/vaultd/lib/vault"
	"github.com/vaultd-foundation/vaultd/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		stateDir       string
		sealRecipients []string
		force          bool
		showVersion    bool
	)

	flagSet := pflag.NewFlagSet("vaultd-keygen", pflag.ContinueOnError)
	flagSet.StringVar(&stateDir, "state-dir", "", "state directory to write the keypair into (required)")
	flagSet.StringSliceVar(&sealRecipients, "seal-recipient", nil, "age X25519 recipient; repeatable; seals the private key instead of writing it raw")
	flagSet.BoolVar(&force, "force", false, "overwrite an existing key")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showVersion {
		fmt.Println("vaultd-keygen", version.Info())
		return nil
	}

	if stateDir == "" {
		return fmt.Errorf("--state-dir is required")
	}
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	// Refuse to clobber existing key material: a regenerated parent
	// key derives a different vault address, orphaning the old vault.
	if !force {
		for _, name := range []string{"parent-signing-key", "parent-signing-key.age"} {
			if _, err := os.Stat(filepath.Join(stateDir, name)); err == nil {
				return fmt.Errorf("%s already exists in %s (use --force to overwrite)", name, stateDir)
			}
		}
	}

	keypair, err := identity.Generate()
	if err != nil {
		return fmt.Errorf("generating keypair: %w", err)
	}

	if len(sealRecipients) > 0 {
		if err := keysource.Seal(stateDir, keypair, sealRecipients); err != nil {
			return err
		}
	} else {
		if err := keysource.Save(stateDir, keypair); err != nil {
			return err
		}
	}

	fmt.Printf("parent:  %s\n", keypair.Public())
	fmt.Printf("vault:   %s\n", vault.DeriveAddress(keypair.Public()))
	if len(sealRecipients) > 0 {
		fmt.Printf("private: sealed to %d age recipient(s)\n", len(sealRecipients))
	}
	return nil
}
