// Copyright 2026 The Vaultd Authors
// SPDX-License-Identifier: Apache-2.0

// Package web provides the HTTP serving harness for the vaultd
// session API.
//
// The server owns the listener lifecycle only; routing and request
// handling are supplied by the caller as an http.Handler. Serve(ctx)
// blocks until the context is cancelled, then drains in-flight
// requests within the configured shutdown timeout.
package web
