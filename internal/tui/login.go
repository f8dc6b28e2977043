// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/models"
)

const (
	emailField = iota
	passwordField
)

// LoginModel is the Bubble Tea model for the sign-in form. It renders an
// email input and a masked password input and dispatches an async login
// command on submit. The program quits once login succeeds or the user
// cancels; [LoginModel.Result] reports the outcome.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string

	session   models.Session
	cancelled bool
}

// NewLoginModel creates a LoginModel. A non-empty email is prefilled and
// focus starts on the password field.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService, email string) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@campus.ac.id"
	emailInput.CharLimit = 254
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	m := &LoginModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{emailInput, passwordInput},
	}

	if email != "" {
		m.inputs[emailField].SetValue(email)
		m.focus = passwordField
	}
	m.inputs[m.focus].Focus()

	return m
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - LoginResult: quits on success, shows the error otherwise
//   - esc, ctrl+c: cancel the form
//   - tab, shift+tab: move focus between inputs
//   - enter: submit, or move to the password field from the email field
//
// Other key events go to the focused input.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
			m.inputs[passwordField].SetValue("")
			m.setFocus(passwordField)
			return m, nil
		}
		m.errMsg = ""
		m.session = result.Session
		return m, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.quit, keys.cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.next):
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.prev):
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case key.Matches(keyMsg, keys.submit):
			if m.submitting {
				return m, nil
			}
			if m.focus == emailField && m.inputs[passwordField].Value() == "" {
				m.setFocus(passwordField)
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[emailField].Value())
			password := m.inputs[passwordField].Value()
			if email == "" || password == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(models.Credentials{Email: email, Password: password})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString(m.inputs[emailField].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString(m.inputs[passwordField].View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString("Signing in...")
	} else {
		b.WriteString("[ Sign in ]")
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("CAMPUS ARCHIVE · SIGN IN", b.String(), helpLine(keys.submit, keys.next, keys.cancel))
}

// Result returns the stored session after a successful login, or
// ErrUserQuit when the form was closed first.
func (m *LoginModel) Result() (models.Session, error) {
	if m.session.Authenticated() {
		return m.session, nil
	}
	return models.Session{}, ErrUserQuit
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, err := auth.Login(ctx, creds)
		return LoginResult{Session: session, Err: err}
	}
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}
