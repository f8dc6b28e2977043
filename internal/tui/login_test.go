package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/models"
)

// stubAuth implements service.ClientAuthService; only Login is used.
type stubAuth struct {
	service.ClientAuthService

	got     models.Credentials
	session models.Session
	err     error
}

func (s *stubAuth) Login(_ context.Context, creds models.Credentials) (models.Session, error) {
	s.got = creds
	return s.session, s.err
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func update(t *testing.T, m *LoginModel, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func TestLoginModel_SubmitSuccess(t *testing.T) {
	auth := &stubAuth{session: models.Session{Token: "tok", Profile: models.Profile{UserID: 7, Email: "ana@campus.ac.id"}}}
	m := NewLoginModel(context.Background(), auth, "")

	m.inputs[emailField].SetValue("  ana@campus.ac.id ")
	m.inputs[passwordField].SetValue("securepassword123")
	m.setFocus(passwordField)

	cmd := update(t, m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Contains(t, m.View(), "Signing in...")

	// a second enter while submitting is ignored
	assert.Nil(t, update(t, m, keyPress(tea.KeyEnter)))

	result, ok := cmd().(LoginResult)
	require.True(t, ok)
	assert.Equal(t, models.Credentials{Email: "ana@campus.ac.id", Password: "securepassword123"}, auth.got)

	quit := update(t, m, result)
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	session, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
}

func TestLoginModel_SubmitFailure(t *testing.T) {
	auth := &stubAuth{err: fmt.Errorf("%w: login: %w", service.ErrLoginOnServer, &adapter.TransportError{
		StatusCode: 401,
		Detail:     "Invalid email or password",
		Err:        adapter.ErrUnauthorized,
	})}
	m := NewLoginModel(context.Background(), auth, "ana@campus.ac.id")
	assert.Equal(t, passwordField, m.focus)

	m.inputs[passwordField].SetValue("wrong-password")
	cmd := update(t, m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)

	assert.Nil(t, update(t, m, cmd()))
	assert.False(t, m.submitting)
	assert.Equal(t, "Invalid email or password", m.errMsg)
	assert.Empty(t, m.inputs[passwordField].Value())
	assert.Contains(t, m.View(), "Invalid email or password")

	_, err := m.Result()
	require.ErrorIs(t, err, ErrUserQuit)
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	m := NewLoginModel(context.Background(), &stubAuth{}, "")
	m.setFocus(passwordField)

	assert.Nil(t, update(t, m, keyPress(tea.KeyEnter)))
	assert.Equal(t, "Email and password are required", m.errMsg)
	assert.False(t, m.submitting)
}

func TestLoginModel_EnterOnEmailMovesToPassword(t *testing.T) {
	m := NewLoginModel(context.Background(), &stubAuth{}, "")
	m.inputs[emailField].SetValue("ana@campus.ac.id")

	assert.Nil(t, update(t, m, keyPress(tea.KeyEnter)))
	assert.Equal(t, passwordField, m.focus)
	assert.False(t, m.submitting)
}

func TestLoginModel_FocusCycles(t *testing.T) {
	m := NewLoginModel(context.Background(), &stubAuth{}, "")
	require.Equal(t, emailField, m.focus)

	update(t, m, keyPress(tea.KeyTab))
	assert.Equal(t, passwordField, m.focus)
	assert.True(t, m.inputs[passwordField].Focused())
	assert.False(t, m.inputs[emailField].Focused())

	update(t, m, keyPress(tea.KeyTab))
	assert.Equal(t, emailField, m.focus)

	update(t, m, keyPress(tea.KeyShiftTab))
	assert.Equal(t, passwordField, m.focus)
}

func TestLoginModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewLoginModel(context.Background(), &stubAuth{}, "")
		cmd := update(t, m, keyPress(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.cancelled)

		_, err := m.Result()
		assert.ErrorIs(t, err, ErrUserQuit)
	}
}

func TestLoginModel_PasswordIsMasked(t *testing.T) {
	m := NewLoginModel(context.Background(), &stubAuth{}, "ana@campus.ac.id")
	m.inputs[passwordField].SetValue("hunter22")

	view := m.View()
	assert.Contains(t, view, "ana@campus.ac.id")
	assert.NotContains(t, view, "hunter22")
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"network", fmt.Errorf("login: %w", adapter.ErrNetwork), "Network unavailable or server unreachable"},
		{"validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errors.New("invalid email")), "invalid email"},
		{"detail", &adapter.TransportError{StatusCode: 422, Detail: "email: field required"}, "email: field required"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}
