package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/campus-archive/models"
)

func (c *CLI) newSearchCommand() *cobra.Command {
	var (
		filter                           models.ProjectFilter
		suggest, tags, filters, advanced bool
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search projects",
		Long: `Search projects visible to you.

  campus search machine learning --year 2024
  campus search --suggest mach
  campus search --tags --limit 10
  campus search --filters`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := c.app.Services.SearchService
			p := printer{w: c.out, json: c.jsonOutput(cmd)}
			if len(args) > 0 {
				filter.Query = strings.Join(args, " ")
			}

			switch {
			case suggest:
				s, err := svc.Suggestions(ctx, filter.Query, filter.Limit)
				if err != nil {
					return err
				}
				return p.result(s, func() {
					p.fields(
						"Titles", list(s.Titles),
						"Authors", list(s.Authors),
						"Tags", list(s.Tags),
						"Courses", list(s.Courses),
					)
				})

			case tags:
				popular, err := svc.PopularTags(ctx, filter.Limit)
				if err != nil {
					return err
				}
				return p.result(popular, func() { p.tags(popular) })

			case filters:
				f, err := svc.Filters(ctx)
				if err != nil {
					return err
				}
				return p.result(f, func() {
					years := make([]string, 0, len(f.Years))
					for _, y := range f.Years {
						years = append(years, strconv.Itoa(y))
					}
					p.fields(
						"Years", list(years),
						"Semesters", list(f.Semesters),
						"Courses", list(f.CourseCodes),
						"Classes", list(f.ClassNames),
					)
					p.tags(f.Tags)
				})

			case advanced:
				found, err := svc.Advanced(ctx, models.ProjectSearch{
					Query:        filter.Query,
					Year:         filter.Year,
					Tag:          filter.Tag,
					PrivacyLevel: filter.PrivacyLevel,
					Status:       filter.Status,
					UploaderID:   filter.UploaderID,
					AdvisorID:    filter.AdvisorID,
					Skip:         filter.Skip,
					Limit:        filter.Limit,
				})
				if err != nil {
					return err
				}
				return p.result(found, func() { p.summaries(found) })
			}

			found, err := svc.Search(ctx, filter)
			if err != nil {
				return err
			}
			return p.result(found, func() { p.summaries(found) })
		},
	}

	f := cmd.Flags()
	bindFilterFlags(f, &filter)
	f.BoolVar(&suggest, "suggest", false, "show completions for QUERY")
	f.BoolVar(&tags, "tags", false, "show the most used tags")
	f.BoolVar(&filters, "filters", false, "show the values available for filtering")
	f.BoolVar(&advanced, "advanced", false, "use the advanced search endpoint")
	cmd.MarkFlagsMutuallyExclusive("suggest", "tags", "filters", "advanced")
	return cmd
}

func (p printer) tags(tags []models.TagCount) {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.Tag, strconv.Itoa(t.Count)})
	}
	p.table([]string{"TAG", "PROJECTS"}, rows)
}
