package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Browse and manage projects",
	}
	cmd.AddCommand(
		c.newProjectsListCommand(),
		c.newProjectsGetCommand(),
		c.newProjectsMineCommand(),
		c.newProjectsCreateCommand(),
		c.newProjectsUpdateCommand(),
		c.newProjectsDeleteCommand(),
	)
	return cmd
}

func bindFilterFlags(f *pflag.FlagSet, filter *models.ProjectFilter) {
	f.StringVarP(&filter.Query, "query", "q", "", "text to match in title, abstract, authors and tags")
	f.IntVar(&filter.Year, "year", 0, "project year")
	f.StringVar(&filter.Tag, "tag", "", "tag")
	f.StringVar((*string)(&filter.PrivacyLevel), "privacy", "", "private, advisor, class or public")
	f.StringVar((*string)(&filter.Status), "status", "", "ongoing, completed or archived")
	f.Int64Var(&filter.UploaderID, "uploader", 0, "uploader user id")
	f.Int64Var(&filter.AdvisorID, "advisor", 0, "advisor user id")
	f.StringVar(&filter.Semester, "semester", "", "Ganjil or Genap")
	f.StringVar(&filter.ClassName, "class", "", "class name")
	f.StringVar(&filter.CourseCode, "course", "", "course code")
	f.IntVar(&filter.Skip, "skip", 0, "results to skip")
	f.IntVar(&filter.Limit, "limit", 0, "maximum results")
}

func (c *CLI) newProjectsListCommand() *cobra.Command {
	var filter models.ProjectFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := c.app.Services.ProjectService.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(projects, func() { p.projects(projects) })
		},
	}
	bindFilterFlags(cmd.Flags(), &filter)
	return cmd
}

func (c *CLI) newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			project, err := c.app.Services.ProjectService.Get(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(project, func() { p.project(project) })
		},
	}
}

func (c *CLI) newProjectsMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List projects you uploaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := c.app.Services.ProjectService.Mine(cmd.Context())
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(projects, func() { p.projects(projects) })
		},
	}
}

// openUpload opens path for a multipart upload. The caller closes the file.
func openUpload(path string) (models.FileUpload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.FileUpload{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return models.FileUpload{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return models.FileUpload{Name: filepath.Base(path), Size: info.Size(), Reader: f}, f, nil
}

func (c *CLI) newProjectsCreateCommand() *cobra.Command {
	var (
		project models.ProjectCreate
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Upload a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report *models.FileUpload
			if pdfPath != "" {
				upload, f, err := openUpload(pdfPath)
				if err != nil {
					return err
				}
				defer f.Close()
				report = &upload
			}

			created, err := c.app.Services.ProjectService.Create(cmd.Context(), project, report)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(created, func() {
				p.success("Created project %d", created.ProjectID)
				p.project(created)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&project.Title, "title", "", "project title")
	f.StringVar(&project.Abstract, "abstract", "", "abstract")
	f.StringSliceVar(&project.Authors, "authors", nil, "comma-separated author names")
	f.StringSliceVar(&project.Tags, "tags", nil, "comma-separated tags")
	f.IntVar(&project.Year, "year", 0, "project year")
	f.StringVar(&project.Semester, "semester", "", "Ganjil or Genap")
	f.StringVar(&project.ClassName, "class", "", "class name")
	f.StringVar(&project.CourseCode, "course", "", "course code")
	f.StringVar((*string)(&project.PrivacyLevel), "privacy", "", "private (default), advisor, class or public")
	f.StringVar(&project.CodeRepoURL, "repo", "", "code repository URL")
	f.StringVar(&project.DatasetURL, "dataset", "", "dataset URL")
	f.Int64Var(&project.AdvisorID, "advisor", 0, "advisor user id")
	f.StringVar(&pdfPath, "pdf", "", "path of the PDF report")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func (c *CLI) newProjectsUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update PROJECT_ID",
		Short: "Change fields of a project you uploaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			update, err := projectUpdateFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			updated, err := c.app.Services.ProjectService.Update(cmd.Context(), projectID, update)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(updated, func() {
				p.success("Updated project %d", updated.ProjectID)
				p.project(updated)
			})
		},
	}

	f := cmd.Flags()
	f.String("title", "", "project title")
	f.String("abstract", "", "abstract")
	f.StringSlice("authors", nil, "comma-separated author names")
	f.StringSlice("tags", nil, "comma-separated tags")
	f.Int("year", 0, "project year")
	f.String("semester", "", "Ganjil or Genap")
	f.String("class", "", "class name")
	f.String("course", "", "course code")
	f.String("status", "", "ongoing, completed or archived")
	f.String("privacy", "", "private, advisor, class or public")
	f.String("repo", "", "code repository URL")
	f.String("dataset", "", "dataset URL")
	return cmd
}

// projectUpdateFromFlags sends only the flags that were set.
func projectUpdateFromFlags(f *pflag.FlagSet) (models.ProjectUpdate, error) {
	var (
		update  models.ProjectUpdate
		changed bool
	)

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		changed = true
		v, _ := f.GetString(name)
		return &v
	}

	update.Title = str("title")
	update.Abstract = str("abstract")
	update.Semester = str("semester")
	update.ClassName = str("class")
	update.CourseCode = str("course")
	update.CodeRepoURL = str("repo")
	update.DatasetURL = str("dataset")
	if v := str("status"); v != nil {
		status := models.ProjectStatus(*v)
		update.Status = &status
	}
	if v := str("privacy"); v != nil {
		privacy := models.PrivacyLevel(*v)
		update.PrivacyLevel = &privacy
	}
	if f.Changed("year") {
		changed = true
		year, _ := f.GetInt("year")
		update.Year = &year
	}
	if f.Changed("authors") {
		changed = true
		update.Authors, _ = f.GetStringSlice("authors")
	}
	if f.Changed("tags") {
		changed = true
		update.Tags, _ = f.GetStringSlice("tags")
	}

	if !changed {
		return update, ErrNothingToUpdate
	}
	return update, nil
}

func (c *CLI) newProjectsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project you uploaded and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = c.app.Services.ProjectService.Delete(cmd.Context(), projectID); err != nil {
				return err
			}
			printer{w: c.out}.success("Deleted project %d", projectID)
			return nil
		},
	}
}
