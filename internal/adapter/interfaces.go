// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the single configured entry point through which the
// client talks to the campus archive REST API.
//
// Every call made through [HTTPTransport] runs an explicit [Pipeline]:
// request transforms (bearer token, field encryption, request id,
// diagnostics) before the network call and response transforms
// (diagnostics, session expiry) after it. Failures are returned as
// [*TransportError], which unwraps to the status sentinels in errors.go so
// callers can use [errors.Is] (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"
)

// Transport issues API calls relative to the configured base URL.
type Transport interface {
	Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error)
	Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error)
	Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error)
	Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error)
}

// TokenSource yields the bearer token of the current session, or "" when
// signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionClearer erases the current session. Clearing an already cleared
// session must succeed.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Session is the part of the session store the pipeline needs.
type Session interface {
	TokenSource
	SessionClearer
}
