package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

const maxUploadMemory = 32 << 20

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// canView must be called with b.mu held.
func (b *Backend) canView(user models.User, p *models.Project) bool {
	if p.UploadedBy == user.UserID {
		return true
	}
	switch p.PrivacyLevel {
	case models.PrivacyPublic, models.PrivacyClass:
		return true
	case models.PrivacyAdvisor:
		if p.AdvisorID != nil && *p.AdvisorID == user.UserID {
			return true
		}
	}
	for _, req := range b.access {
		if req.ProjectID == p.ProjectID && req.RequesterID == user.UserID && req.Status == models.AccessApproved {
			return true
		}
	}
	return false
}

// lookupProject must be called with b.mu held.
func (b *Backend) lookupProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, ok := pathID(r, "projectID")
	if !ok {
		utils.WriteDetail(w, "Invalid project id", http.StatusUnprocessableEntity)
		return nil, false
	}
	p, ok := b.projects[id]
	if !ok {
		utils.WriteDetail(w, "Project not found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func matchesFilter(p *models.Project, q query) bool {
	if text := strings.ToLower(q.get("q")); text != "" {
		haystack := strings.ToLower(p.Title + " " + p.Abstract + " " + strings.Join(p.Authors, " ") + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(haystack, text) {
			return false
		}
	}
	if tag := q.get("tag"); tag != "" && !slices.Contains(p.Tags, tag) {
		return false
	}
	if year := q.int("year"); year > 0 && p.Year != year {
		return false
	}
	if v := q.get("privacy_level"); v != "" && string(p.PrivacyLevel) != v {
		return false
	}
	if v := q.get("status"); v != "" && string(p.Status) != v {
		return false
	}
	if v := q.int("uploader_id"); v > 0 && p.UploadedBy != int64(v) {
		return false
	}
	if v := q.int("advisor_id"); v > 0 && (p.AdvisorID == nil || *p.AdvisorID != int64(v)) {
		return false
	}
	if v := q.get("semester"); v != "" && p.Semester != v {
		return false
	}
	if v := q.get("class_name"); v != "" && p.ClassName != v {
		return false
	}
	if v := q.get("course_code"); v != "" && p.CourseCode != v {
		return false
	}
	return true
}

type query map[string]string

func (u query) get(key string) string { return u[key] }

func (u query) int(key string) int {
	n, _ := strconv.Atoi(u[key])
	return n
}

func queryOf(r *http.Request) query {
	q := query{}
	for k := range r.URL.Query() {
		q[k] = r.URL.Query().Get(k)
	}
	return q
}

// visibleProjects must be called with b.mu held.
func (b *Backend) visibleProjects(user models.User, q query) []models.Project {
	out := []models.Project{}
	for _, p := range b.projects {
		if b.canView(user, p) && matchesFilter(p, q) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID > out[j].ProjectID })

	skip := q.int("skip")
	limit := q.int("limit")
	if limit <= 0 {
		limit = 20
	}
	if skip >= len(out) {
		return []models.Project{}
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (b *Backend) listProjects(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := b.visibleProjects(currentUser(r), queryOf(r))
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) myProjects(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := queryOf(r)
	q["uploader_id"] = strconv.FormatInt(user.UserID, 10)

	b.mu.Lock()
	out := b.visibleProjects(user, q)
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) createProject(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.WriteDetail(w, "Expected multipart form data", http.StatusUnprocessableEntity)
		return
	}
	if r.FormValue("title") == "" {
		writeValidation(w, "title", "field required")
		return
	}

	year, _ := strconv.Atoi(r.FormValue("year"))
	privacy := models.PrivacyLevel(r.FormValue("privacy_level"))
	if !privacy.Valid() {
		writeValidation(w, "privacy_level", "invalid privacy level")
		return
	}

	now := time.Now().UTC()
	p := &models.Project{
		Title:        r.FormValue("title"),
		Abstract:     r.FormValue("abstract"),
		Authors:      splitList(r.FormValue("authors")),
		Tags:         splitList(r.FormValue("tags")),
		Year:         year,
		Semester:     r.FormValue("semester"),
		ClassName:    r.FormValue("class_name"),
		CourseCode:   r.FormValue("course_code"),
		Status:       models.ProjectOngoing,
		PrivacyLevel: privacy,
		CodeRepoURL:  r.FormValue("code_repo_url"),
		DatasetURL:   r.FormValue("dataset_url"),
		UploadedBy:   user.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if advisor, err := strconv.ParseInt(r.FormValue("advisor_id"), 10, 64); err == nil && advisor > 0 {
		p.AdvisorID = &advisor
	}

	var pdf []byte
	var pdfName string
	if f, hdr, err := r.FormFile("pdf_file"); err == nil {
		pdf, _ = io.ReadAll(f)
		_ = f.Close()
		pdfName = hdr.Filename
	}

	b.mu.Lock()
	p.ProjectID = b.newID()
	if pdf != nil {
		rec := b.storeFile(p.ProjectID, pdfName, models.FileMainReport, pdf)
		p.PDFFilePath = rec.meta.SavedPath
		p.PDFFileSize = rec.meta.FileSize
	}
	b.projects[p.ProjectID] = p
	out := *p
	b.mu.Unlock()

	_, _ = utils.WriteJSON(w, out, http.StatusCreated)
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.lookupProject(w, r)
	if !ok {
		return
	}
	if !b.canView(currentUser(r), p) {
		utils.WriteDetail(w, "You don't have access to this project", http.StatusForbidden)
		return
	}
	p.ViewCount++
	_, _ = utils.WriteJSON(w, p, http.StatusOK)
}

func (b *Backend) updateProject(w http.ResponseWriter, r *http.Request) {
	var upd models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.lookupProject(w, r)
	if !ok {
		return
	}
	if p.UploadedBy != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the uploader can edit this project", http.StatusForbidden)
		return
	}

	setIf(&p.Title, upd.Title)
	setIf(&p.Abstract, upd.Abstract)
	setIf(&p.Year, upd.Year)
	setIf(&p.Semester, upd.Semester)
	setIf(&p.ClassName, upd.ClassName)
	setIf(&p.CourseCode, upd.CourseCode)
	setIf(&p.Status, upd.Status)
	setIf(&p.PrivacyLevel, upd.PrivacyLevel)
	setIf(&p.CodeRepoURL, upd.CodeRepoURL)
	setIf(&p.DatasetURL, upd.DatasetURL)
	if upd.Authors != nil {
		p.Authors = upd.Authors
	}
	if upd.Tags != nil {
		p.Tags = upd.Tags
	}
	p.UpdatedAt = time.Now().UTC()

	_, _ = utils.WriteJSON(w, p, http.StatusOK)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (b *Backend) deleteProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.lookupProject(w, r)
	if !ok {
		return
	}
	if p.UploadedBy != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the uploader can delete this project", http.StatusForbidden)
		return
	}
	delete(b.projects, p.ProjectID)
	for id, f := range b.files {
		if f.projectID == p.ProjectID {
			delete(b.files, id)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
