// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/campus-archive/internal/client"
	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/navigation"
)

const (
	appName    = "campus"
	loggerRole = "campus-client"

	flagJSON = "json"
)

// Options configures a CLI. Zero fields fall back to the process streams,
// the real terminal and the system clipboard.
type Options struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Version string

	// IsTerminal reports whether In is an interactive terminal.
	IsTerminal func() bool
	// Clipboard copies text to the system clipboard.
	Clipboard func(string) error
	// Logger overrides the file logger built from configuration.
	Logger *logger.Logger
}

// CLI is the campus command tree together with the App it runs against.
type CLI struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	isTerminal func() bool
	clipboard  func(string) error
	logger     *logger.Logger

	app  *client.App
	root *cobra.Command
}

// New builds the command tree.
func New(opts Options) *CLI {
	c := &CLI{
		in:         opts.In,
		out:        opts.Out,
		errOut:     opts.Err,
		isTerminal: opts.IsTerminal,
		clipboard:  opts.Clipboard,
		logger:     opts.Logger,
	}
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.errOut == nil {
		c.errOut = os.Stderr
	}
	if c.isTerminal == nil {
		c.isTerminal = c.stdinIsTerminal
	}
	if c.clipboard == nil {
		c.clipboard = clipboard.WriteAll
	}

	c.root = c.newRootCommand(opts.Version)
	return c
}

func (c *CLI) newRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Command-line client for the campus project archive",
		Long:          "campus talks to the campus archive API: sign in, browse and upload projects, manage courses, files and access requests.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsApp(cmd) {
				return nil
			}
			return c.start(cmd)
		},
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().Bool(flagJSON, false, "print results as JSON")

	root.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newWhoamiCommand(),
		c.newRegisterCommand(),
		c.newProjectsCommand(),
		c.newCoursesCommand(),
		c.newFilesCommand(),
		c.newSearchCommand(),
		c.newAccessCommand(),
	)

	return root
}

func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// start resolves configuration and wires the App. The router is placed at
// the command's path so that a 401 during "campus login" is not treated
// as leaving the login view.
func (c *CLI) start(cmd *cobra.Command) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := c.logger
	if log == nil {
		log = logger.NewClientLogger(loggerRole, cfg.App.LogFile)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}

	app, err := client.NewApp(cmd.Context(), cfg, routeOf(cmd), log)
	if err != nil {
		return err
	}
	app.Router.OnNavigate(func(nav navigation.Navigation) {
		if nav.To == navigation.LoginPath {
			fmt.Fprintln(c.errOut, warnStyle.Render("Your session has expired. Run 'campus login' to sign in again."))
		}
	})

	c.app = app
	return nil
}

// routeOf maps "campus projects list" to "/projects/list".
func routeOf(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return "/"
	}
	return "/" + strings.Join(parts[1:], "/")
}

// Execute runs the command line args and returns the process exit code.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)

	if c.app != nil {
		if closeErr := c.app.Close(); closeErr != nil {
			c.app.Logger.Err(closeErr).Msg("closing app")
		}
		c.app = nil
	}

	if err != nil {
		fmt.Fprintln(c.errOut, errorStyle.Render("Error: ")+describeError(err))
		return 1
	}
	return 0
}

func (c *CLI) stdinIsTerminal() bool {
	f, ok := c.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *CLI) jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool(flagJSON)
	return v
}
