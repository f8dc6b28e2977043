// Package tui holds the interactive terminal sign-in form used by the
// campus CLI when no credentials are given on the command line.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/models"
)

type TUI struct {
	auth   service.ClientAuthService
	in     io.Reader
	out    io.Writer
	logger *logger.Logger
}

// New returns a TUI reading keys from in and drawing to out. Nil streams
// fall back to the process terminal.
func New(auth service.ClientAuthService, in io.Reader, out io.Writer, log *logger.Logger) *TUI {
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{auth: auth, in: in, out: out, logger: log}
}

// LoginFlow shows the sign-in form and blocks until the user signs in or
// cancels. email prefills the first field.
func (t *TUI) LoginFlow(ctx context.Context, email string) (models.Session, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}

	finalModel, err := tea.NewProgram(NewLoginModel(ctx, t.auth, email), opts...).Run()
	if err != nil {
		t.logger.Err(err).Msg("login form failed")
		return models.Session{}, err
	}

	result, ok := finalModel.(*LoginModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	return result.Result()
}
