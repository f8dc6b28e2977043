// Package fakeapi is an in-memory stand-in for the campus archive REST
// backend, routed with chi. It implements the endpoints the client calls,
// issues real HS256 bearer tokens, decrypts sensitive request fields the
// way the backend does (falling back to the raw value) and records every
// request body so tests can inspect what went over the wire.
package fakeapi
