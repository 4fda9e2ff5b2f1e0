// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultd-foundation/vaultd/lib/clock"
	"github.com/vaultd-foundation/vaultd/lib/identity"
	"github.com/vaultd-foundation/vaultd/lib/ledger"
	"github.com/vaultd-foundation/vaultd/lib/registry"
	"github.com/vaultd-foundation/vaultd/lib/session"
)

type fixedKeys struct {
	keypair *identity.Keypair
}

func (f fixedKeys) Parent() (*identity.Keypair, error) {
	return f.keypair, nil
}

// newTestServer wires a full session service behind the HTTP handler:
// real registry, in-memory ledger, funded parent.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	parent, err := identity.Generate()
	if err != nil {
		t.Fatalf("generating parent: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	memory := ledger.NewMemory(clock.Real())
	memory.Fund(parent.Public(), 1_000_000)

	service := session.New(session.Config{
		Keys:            fixedKeys{keypair: parent},
		Ledger:          memory,
		Registry:        registry.New(),
		Clock:           clock.Real(),
		Logger:          logger,
		SessionDuration: time.Hour,
	})

	server := httptest.NewServer(newHandler(service, logger))
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, path, body string) session.Result {
	t.Helper()
	response, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("POST %s status = %d, want 200", path, response.StatusCode)
	}
	var result session.Result
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return result
}

func TestSessionRoutes(t *testing.T) {
	server := newTestServer(t)

	created := post(t, server, "/session/create", "")
	if !created.OK {
		t.Fatalf("create failed: %s", created.TxOrError)
	}
	if created.Vault == "" || created.Ephemeral == "" || created.Parent == "" {
		t.Errorf("create result has empty identity fields: %+v", created)
	}

	deposited := post(t, server, "/session/deposit", `{"amount": 500, "vault": "`+created.Vault+`"}`)
	if !deposited.OK {
		t.Fatalf("deposit failed: %s", deposited.TxOrError)
	}

	traded := post(t, server, "/session/trade", `{"vault": "`+created.Vault+`", "size": 10, "price": 42}`)
	if !traded.OK {
		t.Fatalf("trade failed: %s", traded.TxOrError)
	}
	if traded.Ephemeral != created.Ephemeral {
		t.Errorf("trade signed by %s, want session key %s", traded.Ephemeral, created.Ephemeral)
	}

	revoked := post(t, server, "/session/revoke", `{"vault": "`+created.Vault+`"}`)
	if !revoked.OK {
		t.Fatalf("revoke failed: %s", revoked.TxOrError)
	}

	// The session is gone: trading again must fail, uniformly shaped.
	after := post(t, server, "/session/trade", `{"vault": "`+created.Vault+`", "size": 1, "price": 1}`)
	if after.OK {
		t.Error("trade after revoke succeeded")
	}
	if !strings.Contains(after.TxOrError, "session not found") {
		t.Errorf("trade after revoke error = %q, want session not found", after.TxOrError)
	}
}

func TestCreateToleratesEmptyBody(t *testing.T) {
	server := newTestServer(t)
	if result := post(t, server, "/session/create", ""); !result.OK {
		t.Errorf("create with empty body failed: %s", result.TxOrError)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	server := newTestServer(t)
	result := post(t, server, "/session/deposit", `{"amont": 500}`)
	if result.OK {
		t.Error("deposit with misspelled field succeeded")
	}
	if !strings.Contains(result.TxOrError, "decoding request body") {
		t.Errorf("error = %q, want decode failure", result.TxOrError)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)
	response, err := http.Get(server.URL + "/session/create")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /session/create status = %d, want 405", response.StatusCode)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	server := newTestServer(t)
	response, err := http.Post(server.URL+"/session/extend", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Errorf("POST /session/extend status = %d, want 404", response.StatusCode)
	}
}
