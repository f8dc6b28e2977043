// Package service holds the typed campus archive API services. Each
// service turns one area of the REST API into Go calls over the shared
// [adapter.Transport], so every call carries the bearer token, has its
// sensitive fields encrypted and ends the session on 401.
//
// Services never present anything to the user; errors are wrapped with
// the operation name and keep the adapter and validators sentinels
// matchable with errors.Is.
package service

import (
	"context"
	"io"

	"github.com/MKhiriev/campus-archive/models"
)

// ClientAuthService manages the account and the Session Credential.
type ClientAuthService interface {
	// Register creates an account. It does not sign in.
	Register(ctx context.Context, user models.UserCreate) (models.User, error)

	// Login authenticates and stores the returned token and profile: the
	// anonymous to authenticated transition.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Logout clears the stored session. It succeeds when already signed out.
	Logout(ctx context.Context) error

	// Me fetches the full account record. Sensitive fields are decrypted
	// where possible and returned as received otherwise.
	Me(ctx context.Context) (models.User, error)

	// Current returns the stored session without contacting the backend.
	Current(ctx context.Context) (models.Session, error)

	// Claims decodes the stored token. Returns ErrNotSignedIn when there is
	// none.
	Claims(ctx context.Context) (models.Claims, error)
}

// ClientProjectService manages projects.
type ClientProjectService interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	Get(ctx context.Context, projectID int64) (models.Project, error)
	Mine(ctx context.Context) ([]models.Project, error)

	// Create uploads project metadata as a multipart form, with the main
	// PDF report when report is not nil.
	Create(ctx context.Context, project models.ProjectCreate, report *models.FileUpload) (models.Project, error)

	Update(ctx context.Context, projectID int64, update models.ProjectUpdate) (models.Project, error)
	Delete(ctx context.Context, projectID int64) error
}

// ClientCourseService manages courses.
type ClientCourseService interface {
	List(ctx context.Context) ([]models.CourseSummary, error)
	Get(ctx context.Context, courseID int64) (models.Course, error)
	Create(ctx context.Context, course models.CourseCreate) (models.Course, error)
	Update(ctx context.Context, courseID int64, update models.CourseUpdate) (models.Course, error)
	Delete(ctx context.Context, courseID int64) error
	Search(ctx context.Context, query string) ([]models.CourseSummary, error)
}

// ClientFileService manages supplementary project files.
type ClientFileService interface {
	// Upload validates and sends files as one multipart batch.
	Upload(ctx context.Context, projectID int64, files ...models.FileUpload) ([]models.ProjectFile, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.ProjectFile, error)

	// Download streams the file contents into w.
	Download(ctx context.Context, fileID int64, w io.Writer) error
	Delete(ctx context.Context, fileID int64) error
}

// ClientSearchService queries the search endpoints.
type ClientSearchService interface {
	Search(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectSummary, error)
	Suggestions(ctx context.Context, query string, limit int) (models.SearchSuggestions, error)
	Filters(ctx context.Context) (models.SearchFilters, error)
	Advanced(ctx context.Context, search models.ProjectSearch) ([]models.ProjectSummary, error)
	PopularTags(ctx context.Context, limit int) ([]models.TagCount, error)
}

// ClientAccessService manages access requests to non-public projects.
type ClientAccessService interface {
	Request(ctx context.Context, projectID int64, message string) (models.AccessRequest, error)
	Mine(ctx context.Context) ([]models.AccessRequestSummary, error)
	ForMyProjects(ctx context.Context) ([]models.AccessRequestSummary, error)
	Get(ctx context.Context, requestID int64) (models.AccessRequest, error)
	Respond(ctx context.Context, requestID int64, respond models.AccessRequestRespond) (models.AccessRequest, error)
	Cancel(ctx context.Context, requestID int64) error
	Check(ctx context.Context, projectID int64) (models.AccessCheck, error)
}
