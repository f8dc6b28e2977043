package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/campus-archive/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Faint(true).Width(16)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

type printer struct {
	w    io.Writer
	json bool
}

// result prints v as JSON when --json is set, or calls human otherwise.
func (p printer) result(v any, human func()) error {
	if !p.json {
		human()
		return nil
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.w, labelStyle.UnsetWidth().Render("(none)"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

// fields prints label/value pairs, skipping empty values.
func (p printer) fields(pairs ...string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		fmt.Fprintln(p.w, labelStyle.Render(pairs[i])+pairs[i+1])
	}
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func id(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func num(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

func datePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

func list(v []string) string {
	return strings.Join(v, ", ")
}

func size(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}

func (p printer) projects(projects []models.Project) {
	rows := make([][]string, 0, len(projects))
	for _, pr := range projects {
		rows = append(rows, []string{id(pr.ProjectID), pr.Title, num(pr.Year), string(pr.PrivacyLevel), string(pr.Status), list(pr.Tags)})
	}
	p.table([]string{"ID", "TITLE", "YEAR", "PRIVACY", "STATUS", "TAGS"}, rows)
}

func (p printer) summaries(projects []models.ProjectSummary) {
	rows := make([][]string, 0, len(projects))
	for _, pr := range projects {
		rows = append(rows, []string{id(pr.ProjectID), pr.Title, num(pr.Year), string(pr.PrivacyLevel), list(pr.Authors), list(pr.Tags)})
	}
	p.table([]string{"ID", "TITLE", "YEAR", "PRIVACY", "AUTHORS", "TAGS"}, rows)
}

func (p printer) project(pr models.Project) {
	fmt.Fprintln(p.w, headerStyle.Render(pr.Title))
	p.fields(
		"ID", id(pr.ProjectID),
		"Authors", list(pr.Authors),
		"Tags", list(pr.Tags),
		"Year", num(pr.Year),
		"Semester", pr.Semester,
		"Class", pr.ClassName,
		"Course", pr.CourseCode,
		"Status", string(pr.Status),
		"Privacy", string(pr.PrivacyLevel),
		"Report", pr.PDFFilePath,
		"Report size", size(pr.PDFFileSize),
		"Repository", pr.CodeRepoURL,
		"Dataset", pr.DatasetURL,
		"Views", strconv.Itoa(pr.ViewCount),
		"Downloads", strconv.Itoa(pr.DownloadCount),
		"Created", date(pr.CreatedAt),
		"Updated", date(pr.UpdatedAt),
	)
	if pr.Abstract != "" {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, pr.Abstract)
	}
}

func (p printer) courses(courses []models.CourseSummary) {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{id(c.CourseID), c.CourseCode, c.CourseName, c.Semester, num(c.Year), c.LecturerName})
	}
	p.table([]string{"ID", "CODE", "NAME", "SEMESTER", "YEAR", "LECTURER"}, rows)
}

func (p printer) course(c models.Course) {
	fmt.Fprintln(p.w, headerStyle.Render(c.CourseCode+" "+c.CourseName))
	p.fields(
		"ID", id(c.CourseID),
		"Semester", c.Semester,
		"Year", num(c.Year),
		"Lecturer", id(c.LecturerID),
		"Created", date(c.CreatedAt),
	)
}

func (p printer) files(files []models.ProjectFile) {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{id(f.FileID), f.OriginalFilename, string(f.FileType), size(f.FileSize), date(f.CreatedAt)})
	}
	p.table([]string{"ID", "NAME", "TYPE", "SIZE", "UPLOADED"}, rows)
}

func (p printer) accessRequests(reqs []models.AccessRequestSummary) {
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{id(r.RequestID), id(r.ProjectID), r.ProjectTitle, r.RequesterName, string(r.Status), date(r.RequestedAt)})
	}
	p.table([]string{"ID", "PROJECT", "TITLE", "REQUESTER", "STATUS", "REQUESTED"}, rows)
}

func (p printer) accessRequest(r models.AccessRequest) {
	p.fields(
		"Request", id(r.RequestID),
		"Project", id(r.ProjectID),
		"Requester", id(r.RequesterID),
		"Status", string(r.Status),
		"Message", r.Message,
		"Response", r.ResponseMessage,
		"Requested", date(r.RequestedAt),
		"Responded", datePtr(r.RespondedAt),
		"Expires", datePtr(r.ExpiresAt),
	)
}
