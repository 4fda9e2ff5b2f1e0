// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// vaultd is the delegated trading session daemon.
//
// It exposes a JSON-over-HTTP API for managing ephemeral trading
// sessions against a custody vault:
//
//	POST /session/create   — delegate to a fresh ephemeral identity
//	POST /session/deposit  — move parent funds into the vault
//	POST /session/trade    — place a position, signed by the session key
//	POST /session/revoke   — end the session immediately
//
// Every response is the same JSON shape: {ok, parent, ephemeral,
// vault, tx_or_error}. The parent signing key is loaded from the
// state directory, optionally age-sealed.
package main
