package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Manage supplementary project files",
	}
	cmd.AddCommand(
		c.newFilesUploadCommand(),
		c.newFilesListCommand(),
		c.newFilesDownloadCommand(),
		c.newFilesDeleteCommand(),
	)
	return cmd
}

func (c *CLI) newFilesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload PROJECT_ID FILE...",
		Short: "Upload files to a project you own (up to 10 at once, 20 MB each)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			uploads := make([]models.FileUpload, 0, len(args)-1)
			for _, path := range args[1:] {
				upload, f, err := openUpload(path)
				if err != nil {
					return err
				}
				defer f.Close()
				uploads = append(uploads, upload)
			}

			files, err := c.app.Services.FileService.Upload(cmd.Context(), projectID, uploads...)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(files, func() {
				p.success("Uploaded %d file(s) to project %d", len(files), projectID)
				p.files(files)
			})
		},
	}
}

func (c *CLI) newFilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List the files of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			files, err := c.app.Services.FileService.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(files, func() { p.files(files) })
		},
	}
}

func (c *CLI) newFilesDownloadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download FILE_ID",
		Short: "Download a file to --output, or to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			fileID, err := parseID(args[0])
			if err != nil {
				return err
			}

			var w io.Writer = c.out
			if output != "" {
				var f *os.File
				if f, err = os.Create(output); err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() {
					err = errors.Join(err, f.Close())
					if err != nil {
						_ = os.Remove(output)
					}
				}()
				w = f
			}

			if err = c.app.Services.FileService.Download(cmd.Context(), fileID, w); err != nil {
				return err
			}
			if output != "" {
				printer{w: c.errOut}.success("Saved file %d to %s", fileID, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path")
	return cmd
}

func (c *CLI) newFilesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE_ID",
		Short: "Delete a file from a project you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = c.app.Services.FileService.Delete(cmd.Context(), fileID); err != nil {
				return err
			}
			printer{w: c.out}.success("Deleted file %d", fileID)
			return nil
		},
	}
}
