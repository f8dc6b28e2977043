package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PrivacyLevel is the access-control tier of a project. It is enforced by
// the backend; the client only displays and submits it.
type PrivacyLevel string

const (
	PrivacyPrivate PrivacyLevel = "private"
	PrivacyAdvisor PrivacyLevel = "advisor"
	PrivacyClass   PrivacyLevel = "class"
	PrivacyPublic  PrivacyLevel = "public"
)

// Valid reports whether p is one of the four known tiers.
func (p PrivacyLevel) Valid() bool {
	switch p {
	case PrivacyPrivate, PrivacyAdvisor, PrivacyClass, PrivacyPublic:
		return true
	}
	return false
}

// ProjectStatus is the completion status of a project.
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// PersonRef is the simplified user record embedded in project and access
// request responses.
type PersonRef struct {
	UserID   int64  `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// Project is the full project record returned by the projects endpoints.
type Project struct {
	ProjectID          int64         `json:"id"`
	Title              string        `json:"title"`
	Abstract           string        `json:"abstract,omitempty"`
	AbstractPreview    string        `json:"abstract_preview,omitempty"`
	Authors            []string      `json:"authors"`
	Tags               []string      `json:"tags"`
	Year               int           `json:"year"`
	Semester           string        `json:"semester,omitempty"`
	ClassName          string        `json:"class_name,omitempty"`
	CourseCode         string        `json:"course_code,omitempty"`
	Status             ProjectStatus `json:"status"`
	PrivacyLevel       PrivacyLevel  `json:"privacy_level"`
	PDFFilePath        string        `json:"pdf_file_path,omitempty"`
	PDFFileSize        int64         `json:"pdf_file_size,omitempty"`
	CodeRepoURL        string        `json:"code_repo_url,omitempty"`
	DatasetURL         string        `json:"dataset_url,omitempty"`
	SupplementaryFiles []string      `json:"supplementary_files,omitempty"`
	UploadedBy         int64         `json:"uploaded_by"`
	AdvisorID          *int64        `json:"advisor_id,omitempty"`
	ViewCount          int           `json:"view_count"`
	DownloadCount      int           `json:"download_count"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Uploader           *PersonRef    `json:"uploader,omitempty"`
	Advisor            *PersonRef    `json:"advisor,omitempty"`
}

// ProjectSummary is the compact record returned by the search endpoints.
type ProjectSummary struct {
	ProjectID       int64         `json:"id"`
	Title           string        `json:"title"`
	AbstractPreview string        `json:"abstract_preview,omitempty"`
	Authors         []string      `json:"authors"`
	Tags            []string      `json:"tags"`
	Year            int           `json:"year"`
	Status          ProjectStatus `json:"status"`
	PrivacyLevel    PrivacyLevel  `json:"privacy_level"`
	ViewCount       int           `json:"view_count"`
	DownloadCount   int           `json:"download_count"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ProjectCreate holds the metadata submitted when a student uploads a
// project. The backend reads it as multipart form fields together with the
// optional PDF report.
type ProjectCreate struct {
	Title        string
	Abstract     string
	Authors      []string
	Tags         []string
	Year         int
	Semester     string
	ClassName    string
	CourseCode   string
	PrivacyLevel PrivacyLevel
	CodeRepoURL  string
	DatasetURL   string
	AdvisorID    int64
}

// FormFields renders p as the multipart form fields expected by
// POST /projects/. Authors and tags are comma-joined; empty optional fields
// are omitted and privacy defaults to private.
func (p ProjectCreate) FormFields() map[string]string {
	privacy := p.PrivacyLevel
	if privacy == "" {
		privacy = PrivacyPrivate
	}

	fields := map[string]string{
		"title":         p.Title,
		"abstract":      p.Abstract,
		"authors":       strings.Join(p.Authors, ","),
		"tags":          strings.Join(p.Tags, ","),
		"year":          strconv.Itoa(p.Year),
		"privacy_level": string(privacy),
	}

	optional := map[string]string{
		"semester":      p.Semester,
		"class_name":    p.ClassName,
		"course_code":   p.CourseCode,
		"code_repo_url": p.CodeRepoURL,
		"dataset_url":   p.DatasetURL,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	if p.AdvisorID > 0 {
		fields["advisor_id"] = strconv.FormatInt(p.AdvisorID, 10)
	}

	return fields
}

// ProjectUpdate is a partial update sent as JSON to PUT /projects/{id}.
// Nil fields are left unchanged by the backend.
type ProjectUpdate struct {
	Title        *string        `json:"title,omitempty"`
	Abstract     *string        `json:"abstract,omitempty"`
	Authors      []string       `json:"authors,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Year         *int           `json:"year,omitempty"`
	Semester     *string        `json:"semester,omitempty"`
	ClassName    *string        `json:"class_name,omitempty"`
	CourseCode   *string        `json:"course_code,omitempty"`
	Status       *ProjectStatus `json:"status,omitempty"`
	PrivacyLevel *PrivacyLevel  `json:"privacy_level,omitempty"`
	CodeRepoURL  *string        `json:"code_repo_url,omitempty"`
	DatasetURL   *string        `json:"dataset_url,omitempty"`
}

// ProjectFilter holds the query parameters accepted by GET /projects and
// GET /search/. Zero values are not sent.
type ProjectFilter struct {
	Query        string
	Year         int
	Tag          string
	PrivacyLevel PrivacyLevel
	Status       ProjectStatus
	UploaderID   int64
	AdvisorID    int64
	Semester     string
	ClassName    string
	CourseCode   string
	Skip         int
	Limit        int
}

// Values encodes f as URL query parameters.
func (f ProjectFilter) Values() url.Values {
	v := url.Values{}
	setString := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	setInt := func(key string, value int64) {
		if value > 0 {
			v.Set(key, strconv.FormatInt(value, 10))
		}
	}

	setString("q", f.Query)
	setInt("year", int64(f.Year))
	setString("tag", f.Tag)
	setString("privacy_level", string(f.PrivacyLevel))
	setString("status", string(f.Status))
	setInt("uploader_id", f.UploaderID)
	setInt("advisor_id", f.AdvisorID)
	setString("semester", f.Semester)
	setString("class_name", f.ClassName)
	setString("course_code", f.CourseCode)
	setInt("skip", int64(f.Skip))
	setInt("limit", int64(f.Limit))

	return v
}
