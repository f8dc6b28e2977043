package store

import (
	"context"

	"github.com/MKhiriev/campus-archive/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStorage is a persistent string key/value store, the client-side
// counterpart of the browser's localStorage.
type LocalStorage interface {
	// GetItem returns the value stored under key. ok is false when the key
	// is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes the given keys. Missing keys are ignored.
	RemoveItem(ctx context.Context, keys ...string) error
	// Close releases the underlying resources.
	Close() error
}

// SessionStore owns the Session Credential: the bearer token and the cached
// profile of the signed-in user.
//
// Implementations are safe for concurrent use and Clear is idempotent.
type SessionStore interface {
	// Token returns the stored bearer token, or "" when signed out.
	Token(ctx context.Context) (string, error)
	// Profile returns the cached profile, or ErrSessionNotFound.
	Profile(ctx context.Context) (models.Profile, error)
	// Session returns token and profile together. A signed-out store
	// returns the zero Session and no error.
	Session(ctx context.Context) (models.Session, error)
	// Save replaces the stored session.
	Save(ctx context.Context, session models.Session) error
	// Clear removes token and profile.
	Clear(ctx context.Context) error
}
