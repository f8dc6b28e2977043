package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newAccessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Request and grant access to non-public projects",
	}
	cmd.AddCommand(
		c.newAccessRequestCommand(),
		c.newAccessMineCommand(),
		c.newAccessIncomingCommand(),
		c.newAccessGetCommand(),
		c.newAccessRespondCommand(),
		c.newAccessCancelCommand(),
		c.newAccessCheckCommand(),
	)
	return cmd
}

func (c *CLI) newAccessRequestCommand() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "request PROJECT_ID",
		Short: "Ask the owner of a project for access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := c.app.Services.AccessService.Request(cmd.Context(), projectID, message)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(req, func() {
				p.success("Requested access to project %d (request %d)", projectID, req.RequestID)
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to the owner")
	return cmd
}

func (c *CLI) newAccessMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List requests you made",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := c.app.Services.AccessService.Mine(cmd.Context())
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(reqs, func() { p.accessRequests(reqs) })
		},
	}
}

func (c *CLI) newAccessIncomingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "incoming",
		Short: "List requests for your projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := c.app.Services.AccessService.ForMyProjects(cmd.Context())
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(reqs, func() { p.accessRequests(reqs) })
		},
	}
}

func (c *CLI) newAccessGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get REQUEST_ID",
		Short: "Show one access request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := c.app.Services.AccessService.Get(cmd.Context(), requestID)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(req, func() { p.accessRequest(req) })
		},
	}
}

func (c *CLI) newAccessRespondCommand() *cobra.Command {
	var (
		action  string
		message string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "respond REQUEST_ID",
		Short: "Approve, deny or revoke a request for your project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}

			respond := models.AccessRequestRespond{
				Action:          models.AccessAction(action),
				ResponseMessage: message,
			}
			if expires > 0 {
				at := time.Now().Add(expires).UTC()
				respond.ExpiresAt = &at
			}

			req, err := c.app.Services.AccessService.Respond(cmd.Context(), requestID, respond)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(req, func() {
				p.success("Request %d is now %s", req.RequestID, req.Status)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&action, "action", "", "approve, deny or revoke")
	f.StringVarP(&message, "message", "m", "", "message to the requester")
	f.DurationVar(&expires, "expires-in", 0, "access lifetime when approving, e.g. 720h")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func (c *CLI) newAccessCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel REQUEST_ID",
		Short: "Withdraw a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = c.app.Services.AccessService.Cancel(cmd.Context(), requestID); err != nil {
				return err
			}
			printer{w: c.out}.success("Cancelled request %d", requestID)
			return nil
		},
	}
}

func (c *CLI) newAccessCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check PROJECT_ID",
		Short: "Show whether you can open a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			check, err := c.app.Services.AccessService.Check(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(check, func() {
				access := "no"
				if check.HasAccess {
					access = "yes"
				}
				p.fields(
					"Project", id(check.ProjectID),
					"Privacy", string(check.PrivacyLevel),
					"Access", access,
					"Request", string(check.RequestStatus),
				)
			})
		},
	}
}
