// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/campus-archive/models"
)

// Local storage keys of the Session Credential.
const (
	TokenKey   = "token"
	ProfileKey = "user"
)

type sessionStore struct {
	storage LocalStorage

	// mu keeps Save and Clear from interleaving, so token and profile
	// always belong to the same login.
	mu sync.Mutex
}

// NewSessionStore returns a SessionStore that keeps the session as the
// "token" and "user" entries of storage.
func NewSessionStore(storage LocalStorage) SessionStore {
	return &sessionStore{storage: storage}
}

func (s *sessionStore) Token(ctx context.Context) (string, error) {
	token, _, err := s.storage.GetItem(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (s *sessionStore) Profile(ctx context.Context) (models.Profile, error) {
	raw, ok, err := s.storage.GetItem(ctx, ProfileKey)
	if err != nil {
		return models.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if !ok || raw == "" {
		return models.Profile{}, ErrSessionNotFound
	}

	var profile models.Profile
	if err = json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: stored profile is corrupted: %w", ErrSessionNotFound, err)
	}

	return profile, nil
}

func (s *sessionStore) Session(ctx context.Context) (models.Session, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if token == "" {
		return models.Session{}, nil
	}

	profile, err := s.Profile(ctx)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return models.Session{Token: token}, err
	}

	return models.Session{Token: token, Profile: profile}, nil
}

func (s *sessionStore) Save(ctx context.Context, session models.Session) error {
	profile, err := json.Marshal(session.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.storage.SetItem(ctx, ProfileKey, string(profile)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err = s.storage.SetItem(ctx, TokenKey, session.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.RemoveItem(ctx, TokenKey, ProfileKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
