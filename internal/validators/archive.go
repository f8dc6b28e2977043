package validators

import (
	"context"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/campus-archive/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldPasswordRule = "password length"
	FieldRole         = "role"
	FieldTitle        = "title"
	FieldYear         = "year"
	FieldPrivacyLevel = "privacy_level"
	FieldCourseCode   = "course_code"
	FieldCourseName   = "course_name"
	FieldSemester     = "semester"
	FieldAction       = "action"
	FieldFiles        = "files"
	FieldReport       = "pdf_file"
)

// Upload limits applied before files are sent.
const (
	MaxFilesPerUpload = 10
	MaxFileSize       = 20 << 20
	MaxReportSize     = 10 << 20
	MinPasswordLength = 8
)

// AllowedExtensions are the file types accepted for supplementary uploads.
var AllowedExtensions = []string{
	".pdf", ".docx", ".doc", ".txt", ".csv", ".xlsx", ".xls", ".zip", ".rar",
	".tar.gz", ".py", ".ipynb", ".r", ".sql", ".md", ".pptx", ".ppt",
}

// Semesters are the academic semesters a course can run in.
var Semesters = []string{"Ganjil", "Genap"}

// Report is the main PDF report attached to a new project.
type Report models.FileUpload

// ArchiveValidator validates campus archive requests:
//   - models.UserCreate
//   - models.Credentials
//   - models.ProjectCreate
//   - models.CourseCreate
//   - models.AccessRequestRespond
//   - []models.FileUpload (supplementary uploads)
//   - Report (the project PDF)
//
// Pointer forms are accepted for every struct type.
type ArchiveValidator struct {
}

// NewArchiveValidator constructs an ArchiveValidator and returns it as the
// Validator interface.
func NewArchiveValidator() Validator {
	return &ArchiveValidator{}
}

// Validate dispatches on the dynamic type of obj. Optional fields restrict
// validation to the named subset; when omitted, every rule of the type
// applies. Returns ErrUnsupportedType for unknown types.
func (v *ArchiveValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserCreate:
		return v.validateUserCreate(value, fields...)
	case *models.UserCreate:
		return v.validateUserCreate(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.ProjectCreate:
		return v.validateProjectCreate(value, fields...)
	case *models.ProjectCreate:
		return v.validateProjectCreate(*value, fields...)

	case models.CourseCreate:
		return v.validateCourseCreate(value, fields...)
	case *models.CourseCreate:
		return v.validateCourseCreate(*value, fields...)

	case models.AccessRequestRespond:
		return v.validateRespond(value, fields...)
	case *models.AccessRequestRespond:
		return v.validateRespond(*value, fields...)

	case []models.FileUpload:
		return v.validateUploads(value)

	case Report:
		return v.validateReport(value)
	case *Report:
		return v.validateReport(*value)

	default:
		return ErrUnsupportedType
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (v *ArchiveValidator) validateUserCreate(user models.UserCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPasswordRule, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !validEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		case FieldPasswordRule:
			if len([]rune(user.Password)) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldRole:
			if user.Role != models.RoleStudent && user.Role != models.RoleLecturer {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ArchiveValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !validEmail(creds.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ArchiveValidator) validateProjectCreate(p models.ProjectCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldYear, FieldPrivacyLevel}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(p.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldYear:
			if p.Year < 1900 || p.Year > 2100 {
				return fmt.Errorf("%w: %d", ErrInvalidYear, p.Year)
			}
		case FieldPrivacyLevel:
			// empty defaults to private
			if p.PrivacyLevel != "" && !p.PrivacyLevel.Valid() {
				return ErrInvalidPrivacyLevel
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ArchiveValidator) validateCourseCreate(c models.CourseCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCourseCode, FieldCourseName, FieldSemester, FieldYear}
	}

	for _, f := range fields {
		switch f {
		case FieldCourseCode:
			if strings.TrimSpace(c.CourseCode) == "" {
				return ErrEmptyCourseCode
			}
		case FieldCourseName:
			if strings.TrimSpace(c.CourseName) == "" {
				return ErrEmptyCourseName
			}
		case FieldSemester:
			valid := false
			for _, s := range Semesters {
				if c.Semester == s {
					valid = true
				}
			}
			if !valid {
				return ErrInvalidSemester
			}
		case FieldYear:
			if c.Year < 1900 || c.Year > 2100 {
				return fmt.Errorf("%w: %d", ErrInvalidYear, c.Year)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ArchiveValidator) validateRespond(r models.AccessRequestRespond, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAction}
	}

	for _, f := range fields {
		switch f {
		case FieldAction:
			if !r.Action.Valid() {
				return ErrInvalidAction
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// allowedExtension reports whether name ends in one of AllowedExtensions.
func allowedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (v *ArchiveValidator) validateUploads(files []models.FileUpload) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if len(files) > MaxFilesPerUpload {
		return fmt.Errorf("%w: %d given, maximum of %d allowed", ErrTooManyFiles, len(files), MaxFilesPerUpload)
	}

	for _, f := range files {
		if f.Name == "" {
			return ErrEmptyFileName
		}
		if f.Size > MaxFileSize {
			return fmt.Errorf("%w: %s exceeds %dMB limit", ErrFileTooLarge, f.Name, MaxFileSize>>20)
		}
		if !allowedExtension(f.Name) {
			return fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, f.Name)
		}
	}

	return nil
}

func (v *ArchiveValidator) validateReport(r Report) error {
	if r.Name == "" {
		return ErrEmptyFileName
	}
	if !strings.EqualFold(filepath.Ext(r.Name), ".pdf") {
		return fmt.Errorf("%w: %s, report must be a PDF", ErrFileTypeNotAllowed, r.Name)
	}
	if r.Size > MaxReportSize {
		return fmt.Errorf("%w: %s exceeds %dMB limit", ErrFileTooLarge, r.Name, MaxReportSize>>20)
	}
	return nil
}
