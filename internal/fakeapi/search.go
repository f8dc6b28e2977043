package fakeapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

func summarize(projects []models.Project) []models.ProjectSummary {
	out := make([]models.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		preview := p.Abstract
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		out = append(out, models.ProjectSummary{
			ProjectID:       p.ProjectID,
			Title:           p.Title,
			AbstractPreview: preview,
			Authors:         p.Authors,
			Tags:            p.Tags,
			Year:            p.Year,
			Status:          p.Status,
			PrivacyLevel:    p.PrivacyLevel,
			ViewCount:       p.ViewCount,
			DownloadCount:   p.DownloadCount,
			CreatedAt:       p.CreatedAt,
		})
	}
	return out
}

func (b *Backend) search(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := summarize(b.visibleProjects(currentUser(r), queryOf(r)))
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) advancedSearch(w http.ResponseWriter, r *http.Request) {
	var body models.ProjectSearch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	q := query{
		"q":             body.Query,
		"tag":           body.Tag,
		"privacy_level": string(body.PrivacyLevel),
		"status":        string(body.Status),
		"year":          strconv.Itoa(body.Year),
		"uploader_id":   strconv.FormatInt(body.UploaderID, 10),
		"advisor_id":    strconv.FormatInt(body.AdvisorID, 10),
		"skip":          strconv.Itoa(body.Skip),
		"limit":         strconv.Itoa(body.Limit),
	}

	b.mu.Lock()
	out := summarize(b.visibleProjects(currentUser(r), q))
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) suggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	if q == "" {
		writeValidation(w, "q", "ensure this value has at least 1 characters")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	out := models.SearchSuggestions{Titles: []string{}, Authors: []string{}, Tags: []string{}, Courses: []string{}}
	add := func(dst *[]string, v string) {
		if len(*dst) < limit && strings.Contains(strings.ToLower(v), q) && !slices.Contains(*dst, v) {
			*dst = append(*dst, v)
		}
	}

	b.mu.Lock()
	user := currentUser(r)
	for _, p := range b.projects {
		if !b.canView(user, p) {
			continue
		}
		add(&out.Titles, p.Title)
		for _, a := range p.Authors {
			add(&out.Authors, a)
		}
		for _, t := range p.Tags {
			add(&out.Tags, t)
		}
		if p.CourseCode != "" {
			add(&out.Courses, p.CourseCode)
		}
	}
	b.mu.Unlock()

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

// tagCounts must be called with b.mu held.
func (b *Backend) tagCounts(user models.User) []models.TagCount {
	counts := map[string]int{}
	for _, p := range b.projects {
		if b.canView(user, p) {
			for _, t := range p.Tags {
				counts[t]++
			}
		}
	}
	out := make([]models.TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func (b *Backend) filters(w http.ResponseWriter, r *http.Request) {
	out := models.SearchFilters{Years: []int{}, Semesters: []string{}, CourseCodes: []string{}, ClassNames: []string{}}
	addString := func(dst *[]string, v string) {
		if v != "" && !slices.Contains(*dst, v) {
			*dst = append(*dst, v)
		}
	}

	b.mu.Lock()
	user := currentUser(r)
	for _, p := range b.projects {
		if !b.canView(user, p) {
			continue
		}
		if p.Year > 0 && !slices.Contains(out.Years, p.Year) {
			out.Years = append(out.Years, p.Year)
		}
		addString(&out.Semesters, p.Semester)
		addString(&out.CourseCodes, p.CourseCode)
		addString(&out.ClassNames, p.ClassName)
	}
	out.Tags = b.tagCounts(user)
	b.mu.Unlock()

	slices.Sort(out.Years)
	slices.Reverse(out.Years)
	slices.Sort(out.Semesters)
	slices.Sort(out.CourseCodes)
	slices.Sort(out.ClassNames)

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) popularTags(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	b.mu.Lock()
	out := b.tagCounts(currentUser(r))
	b.mu.Unlock()

	if len(out) > limit {
		out = out[:limit]
	}
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}
