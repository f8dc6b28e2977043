// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validUserCreate() models.UserCreate {
	return models.UserCreate{
		Email:     "ana@campus.ac.id",
		Password:  "securepassword123",
		Role:      models.RoleStudent,
		StudentID: "2021001",
	}
}

func validProject() models.ProjectCreate {
	return models.ProjectCreate{Title: "Thesis", Year: 2024, PrivacyLevel: models.PrivacyClass}
}

func upload(name string, size int64) models.FileUpload {
	return models.FileUpload{Name: name, Size: size, Reader: strings.NewReader("")}
}

func validate(t *testing.T, obj any, fields ...string) error {
	t.Helper()
	return NewArchiveValidator().Validate(context.Background(), obj, fields...)
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestValidateUserCreate(t *testing.T) {
	require.NoError(t, validate(t, validUserCreate()))
	u := validUserCreate()
	require.NoError(t, validate(t, &u))

	tests := []struct {
		name   string
		mutate func(*models.UserCreate)
		want   error
	}{
		{"bad email", func(u *models.UserCreate) { u.Email = "not-an-email" }, ErrInvalidEmail},
		{"short password", func(u *models.UserCreate) { u.Password = "short" }, ErrPasswordTooShort},
		{"unknown role", func(u *models.UserCreate) { u.Role = "admin" }, ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUserCreate()
			tt.mutate(&u)
			assert.ErrorIs(t, validate(t, u), tt.want)
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, validate(t, models.Credentials{Email: "a@b.co", Password: "x"}))
	assert.ErrorIs(t, validate(t, models.Credentials{Email: "a@b.co"}), ErrEmptyPassword)
	assert.ErrorIs(t, validate(t, models.Credentials{Password: "x"}), ErrInvalidEmail)
}

func TestValidate_FieldScoping(t *testing.T) {
	u := validUserCreate()
	u.Password = "short"

	assert.NoError(t, validate(t, u, FieldEmail, FieldRole))
	assert.NoError(t, validate(t, u, FieldPassword))
	assert.ErrorIs(t, validate(t, u, FieldPasswordRule), ErrPasswordTooShort)
	assert.ErrorIs(t, validate(t, u, "nickname"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Projects and courses
// ---------------------------------------------------------------------------

func TestValidateProjectCreate(t *testing.T) {
	assert.NoError(t, validate(t, validProject()))

	p := validProject()
	p.PrivacyLevel = ""
	assert.NoError(t, validate(t, p), "empty privacy defaults to private")

	p = validProject()
	p.Title = "   "
	assert.ErrorIs(t, validate(t, p), ErrEmptyTitle)

	p = validProject()
	p.PrivacyLevel = "secret"
	assert.ErrorIs(t, validate(t, &p), ErrInvalidPrivacyLevel)

	p = validProject()
	p.Year = 0
	assert.ErrorIs(t, validate(t, p), ErrInvalidYear)
}

func TestValidateCourseCreate(t *testing.T) {
	c := models.CourseCreate{CourseCode: "IF101", CourseName: "Algorithms", Semester: "Ganjil", Year: 2024}
	assert.NoError(t, validate(t, c))

	c.Semester = "Summer"
	assert.ErrorIs(t, validate(t, c), ErrInvalidSemester)

	c.Semester = "Genap"
	c.CourseName = ""
	assert.ErrorIs(t, validate(t, c), ErrEmptyCourseName)
}

func TestValidateRespond(t *testing.T) {
	assert.NoError(t, validate(t, models.AccessRequestRespond{Action: models.ActionRevoke}))
	assert.ErrorIs(t, validate(t, models.AccessRequestRespond{Action: "maybe"}), ErrInvalidAction)
}

// ---------------------------------------------------------------------------
// Uploads
// ---------------------------------------------------------------------------

func TestValidateUploads(t *testing.T) {
	assert.NoError(t, validate(t, []models.FileUpload{upload("data.csv", 1024), upload("code.tar.gz", MaxFileSize)}))
	assert.ErrorIs(t, validate(t, []models.FileUpload{}), ErrNoFiles)
	assert.ErrorIs(t, validate(t, []models.FileUpload{upload("huge.zip", MaxFileSize+1)}), ErrFileTooLarge)
	assert.ErrorIs(t, validate(t, []models.FileUpload{upload("virus.exe", 1)}), ErrFileTypeNotAllowed)
	assert.ErrorIs(t, validate(t, []models.FileUpload{upload("", 1)}), ErrEmptyFileName)

	many := make([]models.FileUpload, MaxFilesPerUpload+1)
	for i := range many {
		many[i] = upload("notes.md", 1)
	}
	assert.ErrorIs(t, validate(t, many), ErrTooManyFiles)
}

func TestValidateReport(t *testing.T) {
	assert.NoError(t, validate(t, Report(upload("Report.PDF", MaxReportSize))))
	assert.ErrorIs(t, validate(t, Report(upload("report.docx", 10))), ErrFileTypeNotAllowed)
	assert.ErrorIs(t, validate(t, Report(upload("report.pdf", MaxReportSize+1))), ErrFileTooLarge)
}

func TestValidate_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, validate(t, 42), ErrUnsupportedType)
}
