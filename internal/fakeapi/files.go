package fakeapi

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

// storeFile must be called with b.mu held.
func (b *Backend) storeFile(projectID int64, name string, fileType models.FileType, content []byte) *fileRecord {
	id := b.newID()
	rec := &fileRecord{
		meta: models.ProjectFile{
			FileID:           id,
			OriginalFilename: name,
			FileType:         fileType,
			MimeType:         mime.TypeByExtension(filepath.Ext(name)),
			FileSize:         int64(len(content)),
			SavedPath:        fmt.Sprintf("uploads/projects/%d/%d%s", projectID, id, filepath.Ext(name)),
			CreatedAt:        time.Now().UTC(),
		},
		projectID: projectID,
		content:   content,
	}
	b.files[id] = rec
	return rec
}

func (b *Backend) uploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.WriteDetail(w, "Expected multipart form data", http.StatusUnprocessableEntity)
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeValidation(w, "files", "field required")
		return
	}

	type upload struct {
		name    string
		content []byte
	}
	uploads := make([]upload, 0, len(headers))
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			utils.WriteDetail(w, "Could not read upload", http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(f)
		_ = f.Close()
		uploads = append(uploads, upload{name: hdr.Filename, content: content})
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.lookupProject(w, r)
	if !ok {
		return
	}
	if p.UploadedBy != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the uploader can add files", http.StatusForbidden)
		return
	}

	out := make([]models.ProjectFile, 0, len(uploads))
	for _, u := range uploads {
		rec := b.storeFile(p.ProjectID, u.name, models.FileSupplementary, u.content)
		p.SupplementaryFiles = append(p.SupplementaryFiles, rec.meta.SavedPath)
		out = append(out, rec.meta)
	}

	_, _ = utils.WriteJSON(w, out, http.StatusCreated)
}

func (b *Backend) listFiles(w http.ResponseWriter, r *http.Request) {
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

	out := []models.ProjectFile{}
	for _, f := range b.files {
		if f.projectID == p.ProjectID {
			out = append(out, f.meta)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileID < out[j].FileID })

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

// lookupFile must be called with b.mu held.
func (b *Backend) lookupFile(w http.ResponseWriter, r *http.Request) (*fileRecord, *models.Project, bool) {
	id, ok := pathID(r, "fileID")
	if !ok {
		utils.WriteDetail(w, "Invalid file id", http.StatusUnprocessableEntity)
		return nil, nil, false
	}
	f, ok := b.files[id]
	if !ok {
		utils.WriteDetail(w, "File not found", http.StatusNotFound)
		return nil, nil, false
	}
	return f, b.projects[f.projectID], true
}

func (b *Backend) downloadFile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	f, p, ok := b.lookupFile(w, r)
	if !ok {
		b.mu.Unlock()
		return
	}
	if p == nil || !b.canView(currentUser(r), p) {
		b.mu.Unlock()
		utils.WriteDetail(w, "You don't have access to this file", http.StatusForbidden)
		return
	}
	p.DownloadCount++
	content := f.content
	meta := f.meta
	b.mu.Unlock()

	contentType := meta.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": meta.OriginalFilename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (b *Backend) deleteFile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, p, ok := b.lookupFile(w, r)
	if !ok {
		return
	}
	if p == nil || p.UploadedBy != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the uploader can delete files", http.StatusForbidden)
		return
	}
	delete(b.files, f.meta.FileID)
	w.WriteHeader(http.StatusNoContent)
}
