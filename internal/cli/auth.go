// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/internal/tui"
	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long:  "Sign in with --email and --password, or interactively when both are not given and stdin is a terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			auth := c.app.Services.AuthService

			var (
				session models.Session
				err     error
			)
			switch {
			case email != "" && password != "":
				session, err = auth.Login(ctx, models.Credentials{Email: email, Password: password})
			case c.isTerminal():
				session, err = tui.New(auth, c.in, c.out, c.app.Logger).LoginFlow(ctx, email)
			default:
				return ErrCredentialsRequired
			}
			if err != nil {
				return err
			}

			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(session.Profile, func() {
				p.success("Signed in as %s (%s)", session.Profile.DisplayName(), session.Profile.Role)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func (c *CLI) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			printer{w: c.out}.success("Signed out")
			return nil
		},
	}
}

func (c *CLI) newWhoamiCommand() *cobra.Command {
	var remote, copyToken bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			auth := c.app.Services.AuthService
			p := printer{w: c.out, json: c.jsonOutput(cmd)}

			session, err := auth.Current(ctx)
			if err != nil {
				return err
			}
			if !session.Authenticated() {
				return service.ErrNotSignedIn
			}

			if copyToken {
				if err = c.clipboard(session.Token); err != nil {
					return fmt.Errorf("copy token: %w", err)
				}
			}

			if remote {
				user, err := auth.Me(ctx)
				if err != nil {
					return err
				}
				return p.result(user, func() {
					p.fields(
						"ID", id(user.UserID),
						"Email", user.Email,
						"Name", user.FullName,
						"Role", string(user.Role),
						"Student ID", user.StudentID,
						"Department", user.Department,
						"Title", user.Title,
						"Phone", user.Phone,
						"Last login", datePtr(user.LastLogin),
					)
					c.printCopied(p, copyToken)
				})
			}

			expires := ""
			if claims, err := auth.Claims(ctx); err == nil && claims.ExpiresAt != nil {
				expires = date(claims.ExpiresAt.Time)
				if claims.Expired(time.Now()) {
					expires += " " + warnStyle.Render("(expired)")
				}
			}

			return p.result(session.Profile, func() {
				p.fields(
					"ID", id(session.Profile.UserID),
					"Email", session.Profile.Email,
					"Name", session.Profile.FullName,
					"Role", string(session.Profile.Role),
					"Token expires", expires,
				)
				c.printCopied(p, copyToken)
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the full account record from the server")
	cmd.Flags().BoolVar(&copyToken, "copy-token", false, "copy the bearer token to the clipboard")
	return cmd
}

func (c *CLI) printCopied(p printer, copied bool) {
	if copied {
		p.success("Token copied to clipboard")
	}
}

func (c *CLI) newRegisterCommand() *cobra.Command {
	var (
		user models.UserCreate
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  "Create an account. The password is prompted for when --password is not given and stdin is a terminal. Registering does not sign in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user.Role = models.Role(strings.ToLower(role))
			if user.Role == "lecturer" {
				user.Role = models.RoleLecturer
			}

			if user.Password == "" {
				password, err := c.readPassword("Password: ")
				if err != nil {
					return err
				}
				user.Password = password
			}

			created, err := c.app.Services.AuthService.Register(cmd.Context(), user)
			if err != nil {
				return err
			}

			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(created, func() {
				p.success("Registered %s as %s. Run 'campus login' to sign in.", created.Email, created.Role)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&user.Email, "email", "e", "", "account email")
	f.StringVarP(&user.Password, "password", "p", "", "account password, at least 8 characters")
	f.StringVar(&user.FullName, "name", "", "full name")
	f.StringVar(&role, "role", string(models.RoleStudent), "student or dosen")
	f.StringVar(&user.StudentID, "student-id", "", "student number (students)")
	f.StringVar(&user.Department, "department", "", "department (lecturers)")
	f.StringVar(&user.Title, "title", "", "academic title (lecturers)")
	f.StringVar(&user.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword prompts on the terminal without echo. Outside a terminal it
// reads one line from stdin.
func (c *CLI) readPassword(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && c.isTerminal() {
		fmt.Fprint(c.errOut, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCredentialsRequired
	}
	return strings.TrimRight(line, "\r\n"), nil
}
