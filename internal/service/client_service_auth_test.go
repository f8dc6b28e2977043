// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/mock"
	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

// ── Register ────────────────────────────────────────────────────────────────

func TestRegister_EncryptsSensitiveFieldsOnTheWire(t *testing.T) {
	env := newTestEnv(t)
	c := env.newClient(t)

	user, err := c.AuthService.Register(context.Background(), models.UserCreate{
		Email:     "ana@campus.ac.id",
		Password:  "securepassword123",
		FullName:  "Ana",
		Role:      models.RoleStudent,
		StudentID: "2021001",
		Phone:     "+62811000111",
	})
	require.NoError(t, err)

	// the backend stores sensitive fields encrypted; the client decrypts them
	assert.Equal(t, "2021001", user.StudentID)
	assert.Equal(t, "+62811000111", user.Phone)
	assert.Equal(t, "ana@campus.ac.id", user.Email)

	req, ok := env.backend.LastRequest("POST", "/api/auth/register")
	require.True(t, ok)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &wire))
	assert.Equal(t, "ana@campus.ac.id", wire["email"])
	assert.Equal(t, "Ana", wire["full_name"])
	for _, field := range []string{"password", "student_id", "phone"} {
		assert.NotContains(t, []string{"securepassword123", "2021001", "+62811000111"}, wire[field], field)
	}
}

func TestRegister_ValidationStopsBeforeSending(t *testing.T) {
	env := newTestEnv(t)
	c := env.newClient(t)

	_, err := c.AuthService.Register(context.Background(), models.UserCreate{
		Email: "ana@campus.ac.id", Password: "short", Role: models.RoleStudent,
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, validators.ErrPasswordTooShort)
	assert.Empty(t, env.backend.Requests())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "ana@campus.ac.id", models.RoleStudent)

	c := env.newClient(t)
	_, err := c.AuthService.Register(context.Background(), models.UserCreate{
		Email: "ana@campus.ac.id", Password: "anotherpassword", Role: models.RoleStudent,
	})
	require.ErrorIs(t, err, ErrRegisterOnServer)
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	var te *adapter.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Email already registered", te.Detail)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_StoresSession(t *testing.T) {
	env := newTestEnv(t)
	c := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	ctx := context.Background()

	session, err := c.AuthService.Current(ctx)
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
	assert.Equal(t, "ana@campus.ac.id", session.Profile.Email)
	assert.Equal(t, models.RoleStudent, session.Profile.Role)

	claims, err := c.AuthService.Claims(ctx)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, session.Profile.UserID, userID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.False(t, claims.Expired(time.Now()))

	req, ok := env.backend.LastRequest("POST", "/api/auth/login")
	require.True(t, ok)
	var wire map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &wire))
	assert.NotEqual(t, "securepassword123", wire["password"])
	plain, err := c.cipher.Decrypt(wire["password"])
	require.NoError(t, err)
	assert.Equal(t, "securepassword123", plain)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "ana@campus.ac.id", models.RoleStudent)

	c := env.newClient(t)
	_, err := c.AuthService.Login(context.Background(), models.Credentials{Email: "ana@campus.ac.id", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrLoginOnServer)
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	session, err := c.AuthService.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestLogin_SaveFailure(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "ana@campus.ac.id", models.RoleStudent)

	ctrl := gomock.NewController(t)
	session := mock.NewMockSessionStore(ctrl)
	session.EXPECT().Token(gomock.Any()).Return("", nil).AnyTimes()
	session.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	transport, err := adapter.NewHTTPTransport(configFor(env), adapter.DefaultPipeline(adapter.PipelineDeps{Session: session}), nil)
	require.NoError(t, err)

	auth := NewClientAuthService(transport, session, env.newClient(t).cipher, nil, validators.NewArchiveValidator(), logger.Nop())
	_, err = auth.Login(context.Background(), models.Credentials{Email: "ana@campus.ac.id", Password: "securepassword123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

// ── Me / Claims / Logout ────────────────────────────────────────────────────

func TestMe_DecryptsSensitiveFields(t *testing.T) {
	env := newTestEnv(t)
	c := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)

	me, err := c.AuthService.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2021ana", me.StudentID)
	assert.NotNil(t, me.LastLogin)
}

func TestClaims_FromStoredToken(t *testing.T) {
	token, err := utils.GenerateJWTToken("campus-archive", 42, models.RoleLecturer, time.Hour, "k")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	session := mock.NewMockSessionStore(ctrl)
	session.EXPECT().Token(gomock.Any()).Return(token, nil)

	auth := NewClientAuthService(nil, session, nil, nil, validators.NewArchiveValidator(), logger.Nop())
	claims, err := auth.Claims(context.Background())
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, models.RoleLecturer, claims.Role)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	c := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	ctx := context.Background()

	require.NoError(t, c.AuthService.Logout(ctx))
	require.NoError(t, c.AuthService.Logout(ctx))

	_, err := c.AuthService.Claims(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)

	_, err = c.AuthService.Me(ctx)
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
}

// ── Session expiry ──────────────────────────────────────────────────────────

func TestSessionExpiry_ClearsSessionAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	c := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	ctx := context.Background()

	var expired []adapter.SessionExpired
	c.events.Subscribe(func(ev adapter.SessionExpired) { expired = append(expired, ev) })

	env.backend.RevokeTokens()

	_, err := c.ProjectService.Mine(ctx)
	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))

	session, err := c.AuthService.Current(ctx)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
	require.Len(t, expired, 1)
	assert.Contains(t, expired[0].URL, "/projects/me/projects")
}
