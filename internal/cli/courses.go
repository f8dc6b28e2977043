package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newCoursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Browse and manage courses",
	}
	cmd.AddCommand(
		c.newCoursesListCommand(),
		c.newCoursesGetCommand(),
		c.newCoursesCreateCommand(),
		c.newCoursesUpdateCommand(),
		c.newCoursesDeleteCommand(),
		c.newCoursesSearchCommand(),
	)
	return cmd
}

func (c *CLI) newCoursesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			courses, err := c.app.Services.CourseService.List(cmd.Context())
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(courses, func() { p.courses(courses) })
		},
	}
}

func (c *CLI) newCoursesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			course, err := c.app.Services.CourseService.Get(cmd.Context(), courseID)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(course, func() { p.course(course) })
		},
	}
}

func (c *CLI) newCoursesCreateCommand() *cobra.Command {
	var course models.CourseCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course (lecturers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := c.app.Services.CourseService.Create(cmd.Context(), course)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(created, func() {
				p.success("Created course %d", created.CourseID)
				p.course(created)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&course.CourseCode, "code", "", "course code, e.g. IF2110")
	f.StringVar(&course.CourseName, "name", "", "course name")
	f.StringVar(&course.Semester, "semester", "", "Ganjil or Genap")
	f.IntVar(&course.Year, "year", 0, "academic year")
	return cmd
}

func (c *CLI) newCoursesUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update COURSE_ID",
		Short: "Change fields of a course you teach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update models.CourseUpdate
			f := cmd.Flags()
			for name, dst := range map[string]**string{
				"code":     &update.CourseCode,
				"name":     &update.CourseName,
				"semester": &update.Semester,
			} {
				if f.Changed(name) {
					v, _ := f.GetString(name)
					*dst = &v
				}
			}
			if f.Changed("year") {
				year, _ := f.GetInt("year")
				update.Year = &year
			}
			if update == (models.CourseUpdate{}) {
				return ErrNothingToUpdate
			}

			updated, err := c.app.Services.CourseService.Update(cmd.Context(), courseID, update)
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(updated, func() { p.course(updated) })
		},
	}

	f := cmd.Flags()
	f.String("code", "", "course code")
	f.String("name", "", "course name")
	f.String("semester", "", "Ganjil or Genap")
	f.Int("year", 0, "academic year")
	return cmd
}

func (c *CLI) newCoursesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COURSE_ID",
		Short: "Delete a course you teach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = c.app.Services.CourseService.Delete(cmd.Context(), courseID); err != nil {
				return err
			}
			printer{w: c.out}.success("Deleted course %d", courseID)
			return nil
		},
	}
}

func (c *CLI) newCoursesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY...",
		Short: "Find courses by code or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := c.app.Services.CourseService.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			return p.result(courses, func() { p.courses(courses) })
		},
	}
}
