// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/models"
)

const (
	tokenIssuer   = "campus-archive"
	tokenDuration = time.Hour
)

// RecordedRequest is a request as received by the backend.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Header      http.Header
	Body        []byte
}

// Backend is the in-memory backend state. It is safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	cipher  crypto.FieldCipher
	signKey string
	logger  *logger.Logger

	nextID   int64
	users    map[int64]*userRecord
	projects map[int64]*models.Project
	files    map[int64]*fileRecord
	courses  map[int64]*models.Course
	access   map[int64]*models.AccessRequest

	requests []RecordedRequest
}

type userRecord struct {
	user     models.User
	password string
}

type fileRecord struct {
	meta      models.ProjectFile
	projectID int64
	content   []byte
}

// New returns an empty backend sharing secret with the client.
func New(secret string, log *logger.Logger) *Backend {
	if log == nil {
		log = logger.Nop()
	}
	return &Backend{
		cipher:   crypto.NewFieldCipher(secret, crypto.KeyDerivationLegacy, log),
		signKey:  "fakeapi-sign-key",
		logger:   log,
		users:    map[int64]*userRecord{},
		projects: map[int64]*models.Project{},
		files:    map[int64]*fileRecord{},
		courses:  map[int64]*models.Course{},
		access:   map[int64]*models.AccessRequest{},
	}
}

// NewServer starts an httptest server for b. The API lives under /api.
func NewServer(b *Backend) *httptest.Server {
	return httptest.NewServer(b.Init())
}

// Init builds the router.
func (b *Backend) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(b.record)
	router.Use(b.withRequestID)
	router.Use(b.withLogging)

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", b.register)
			r.Post("/auth/login", b.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(b.auth)

			r.Get("/auth/me", b.me)

			r.Get("/projects", b.listProjects)
			r.Post("/projects/", b.createProject)
			r.Get("/projects/me/projects", b.myProjects)
			r.Get("/projects/{projectID}", b.getProject)
			r.Put("/projects/{projectID}", b.updateProject)
			r.Delete("/projects/{projectID}", b.deleteProject)
			r.Post("/projects/{projectID}/files", b.uploadFiles)

			r.Get("/files/project/{projectID}", b.listFiles)
			r.Get("/files/{fileID}/download", b.downloadFile)
			r.Delete("/files/{fileID}", b.deleteFile)

			r.Get("/courses", b.listCourses)
			r.Post("/courses", b.createCourse)
			r.Get("/courses/search/", b.searchCourses)
			r.Get("/courses/{courseID}", b.getCourse)
			r.Put("/courses/{courseID}", b.updateCourse)
			r.Delete("/courses/{courseID}", b.deleteCourse)

			r.Get("/search", b.search)
			r.Get("/search/suggestions", b.suggestions)
			r.Get("/search/filters", b.filters)
			r.Post("/search/advanced", b.advancedSearch)
			r.Get("/search/popular-tags", b.popularTags)

			r.Post("/access/", b.requestAccess)
			r.Get("/access/my-requests", b.myAccessRequests)
			r.Get("/access/for-my-projects", b.incomingAccessRequests)
			r.Get("/access/check/{projectID}", b.checkAccess)
			r.Get("/access/{requestID}", b.getAccessRequest)
			r.Post("/access/{requestID}/respond", b.respondAccessRequest)
			r.Delete("/access/{requestID}", b.cancelAccessRequest)
		})
	})

	return router
}

// record keeps a copy of every request body.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Header:      r.Header.Clone(),
			Body:        body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request to path.
func (b *Backend) LastRequest(method, path string) (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].Method == method && b.requests[i].Path == path {
			return b.requests[i], true
		}
	}
	return RecordedRequest{}, false
}

// RevokeTokens invalidates every token issued so far.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	b.signKey += "-rotated"
	b.mu.Unlock()
}

func (b *Backend) newID() int64 {
	b.nextID++
	return b.nextID
}
