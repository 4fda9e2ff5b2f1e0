// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vaultd-foundation/vaultd/lib/session"
)

// depositRequest is the body of POST /session/deposit. The vault
// field is informational: the operation always targets the vault
// derived from the daemon's parent identity.
type depositRequest struct {
	Amount uint64 `json:"amount"`
	Vault  string `json:"vault"`
}

// tradeRequest is the body of POST /session/trade.
type tradeRequest struct {
	Vault string `json:"vault"`
	Size  int64  `json:"size"`
	Price int64  `json:"price"`
}

// revokeRequest is the body of POST /session/revoke. Unlike deposit
// and trade, the vault address here is checked: it must be the one
// derived from the parent identity.
type revokeRequest struct {
	Vault string `json:"vault"`
}

// newHandler routes the session API. Every route answers with the
// uniform session.Result shape and HTTP 200 — operation failures are
// carried in the body, not the status code, so clients branch on one
// field only.
func newHandler(service *session.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /session/create", func(writer http.ResponseWriter, request *http.Request) {
		writeResult(writer, logger, service.CreateSession(request.Context()))
	})

	mux.HandleFunc("POST /session/deposit", func(writer http.ResponseWriter, request *http.Request) {
		var body depositRequest
		if err := decodeBody(request, &body); err != nil {
			writeResult(writer, logger, badRequest(err))
			return
		}
		writeResult(writer, logger, service.Deposit(request.Context(), body.Amount, body.Vault))
	})

	mux.HandleFunc("POST /session/trade", func(writer http.ResponseWriter, request *http.Request) {
		var body tradeRequest
		if err := decodeBody(request, &body); err != nil {
			writeResult(writer, logger, badRequest(err))
			return
		}
		writeResult(writer, logger, service.Trade(request.Context(), body.Vault, body.Size, body.Price))
	})

	mux.HandleFunc("POST /session/revoke", func(writer http.ResponseWriter, request *http.Request) {
		var body revokeRequest
		if err := decodeBody(request, &body); err != nil {
			writeResult(writer, logger, badRequest(err))
			return
		}
		writeResult(writer, logger, service.Revoke(request.Context(), body.Vault))
	})

	return mux
}

// decodeBody parses a JSON request body, tolerating an empty body
// (all fields default). Unknown fields are rejected so that typoed
// field names fail loudly instead of silently defaulting.
func decodeBody(request *http.Request, into any) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

func badRequest(err error) session.Result {
	return session.Result{TxOrError: err.Error()}
}

func writeResult(writer http.ResponseWriter, logger *slog.Logger, result session.Result) {
	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(result); err != nil {
		logger.Error("writing response", "error", err)
	}
}
