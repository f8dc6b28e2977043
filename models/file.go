package models

import (
	"io"
	"time"
)

// FileType classifies an uploaded project file.
type FileType string

const (
	FileMainReport    FileType = "main_report"
	FileSupplementary FileType = "supplementary"
	FileThumbnail     FileType = "thumbnail"
)

// ProjectFile describes a file attached to a project.
type ProjectFile struct {
	FileID           int64     `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	FileType         FileType  `json:"file_type"`
	MimeType         string    `json:"mime_type,omitempty"`
	FileSize         int64     `json:"file_size,omitempty"`
	SavedPath        string    `json:"saved_path"`
	CreatedAt        time.Time `json:"created_at"`
}

// FileUpload is a file to be sent in a multipart body.
type FileUpload struct {
	// Name is the file name reported to the backend.
	Name string
	// Size is the length of Reader in bytes, used for client-side limits.
	Size int64
	// Reader supplies the file contents.
	Reader io.Reader
}
