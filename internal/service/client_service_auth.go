// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/store"
	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

type clientAuthService struct {
	transport adapter.Transport
	session   store.SessionStore
	cipher    crypto.FieldCipher
	fields    []string
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(transport adapter.Transport, session store.SessionStore, cipher crypto.FieldCipher, sensitiveFields []string, validator validators.Validator, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		transport: transport,
		session:   session,
		cipher:    cipher,
		fields:    sensitiveFields,
		validator: validator,
		logger:    log,
	}
}

func (a *clientAuthService) Register(ctx context.Context, user models.UserCreate) (models.User, error) {
	if err := a.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := a.transport.Post(ctx, "/auth/register", user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	return decodeDecrypted[models.User]("register", a.cipher, a.fields, resp, nil)
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := a.transport.Post(ctx, "/auth/login", creds)
	token, err := decode[models.TokenResponse]("login", resp, err)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}
	if token.AccessToken == "" {
		return models.Session{}, ErrEmptyToken
	}

	session := models.Session{Token: token.AccessToken, Profile: token.User}
	if err = a.session.Save(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	a.logger.Info().Int64("user_id", session.Profile.UserID).Str("user_role", string(session.Profile.Role)).Msg("signed in")
	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info().Msg("signed out")
	return nil
}

func (a *clientAuthService) Me(ctx context.Context) (models.User, error) {
	resp, err := a.transport.Get(ctx, "/auth/me")
	return decodeDecrypted[models.User]("get current user", a.cipher, a.fields, resp, err)
}

func (a *clientAuthService) Current(ctx context.Context) (models.Session, error) {
	session, err := a.session.Session(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func (a *clientAuthService) Claims(ctx context.Context) (models.Claims, error) {
	token, err := a.session.Token(ctx)
	if err != nil {
		return models.Claims{}, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return models.Claims{}, ErrNotSignedIn
	}

	claims, err := utils.ParseUnverifiedClaims(token)
	if err != nil {
		return models.Claims{}, err
	}
	return claims, nil
}

// IsSessionExpired reports whether err came from the backend rejecting the
// session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized)
}
