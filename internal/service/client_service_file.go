package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

type clientFileService struct {
	transport adapter.Transport
	validator validators.Validator
}

func NewClientFileService(transport adapter.Transport, validator validators.Validator) ClientFileService {
	return &clientFileService{transport: transport, validator: validator}
}

func (f *clientFileService) Upload(ctx context.Context, projectID int64, files ...models.FileUpload) ([]models.ProjectFile, error) {
	if err := f.validator.Validate(ctx, files); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	parts := make([]adapter.MultipartFile, 0, len(files))
	for _, file := range files {
		parts = append(parts, adapter.MultipartFile{Field: "files", Name: file.Name, Reader: file.Reader})
	}

	resp, err := f.transport.Post(ctx, fmt.Sprintf("/projects/%d/files", projectID), nil, adapter.WithMultipart(nil, parts...))
	return decode[[]models.ProjectFile](fmt.Sprintf("upload files to project %d", projectID), resp, err)
}

func (f *clientFileService) ListByProject(ctx context.Context, projectID int64) ([]models.ProjectFile, error) {
	resp, err := f.transport.Get(ctx, fmt.Sprintf("/files/project/%d", projectID))
	return decode[[]models.ProjectFile](fmt.Sprintf("list files of project %d", projectID), resp, err)
}

func (f *clientFileService) Download(ctx context.Context, fileID int64, w io.Writer) error {
	if _, err := f.transport.Get(ctx, fmt.Sprintf("/files/%d/download", fileID), adapter.WithOutput(w)); err != nil {
		return fmt.Errorf("download file %d: %w", fileID, err)
	}
	return nil
}

func (f *clientFileService) Delete(ctx context.Context, fileID int64) error {
	if _, err := f.transport.Delete(ctx, fmt.Sprintf("/files/%d", fileID)); err != nil {
		return fmt.Errorf("delete file %d: %w", fileID, err)
	}
	return nil
}
