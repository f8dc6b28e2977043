package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

type clientProjectService struct {
	transport adapter.Transport
	validator validators.Validator
}

func NewClientProjectService(transport adapter.Transport, validator validators.Validator) ClientProjectService {
	return &clientProjectService{transport: transport, validator: validator}
}

func (p *clientProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	resp, err := p.transport.Get(ctx, "/projects", adapter.WithQuery(filter.Values()))
	return decode[[]models.Project]("list projects", resp, err)
}

func (p *clientProjectService) Get(ctx context.Context, projectID int64) (models.Project, error) {
	resp, err := p.transport.Get(ctx, fmt.Sprintf("/projects/%d", projectID))
	return decode[models.Project](fmt.Sprintf("get project %d", projectID), resp, err)
}

func (p *clientProjectService) Mine(ctx context.Context) ([]models.Project, error) {
	resp, err := p.transport.Get(ctx, "/projects/me/projects")
	return decode[[]models.Project]("list my projects", resp, err)
}

func (p *clientProjectService) Create(ctx context.Context, project models.ProjectCreate, report *models.FileUpload) (models.Project, error) {
	if err := p.validator.Validate(ctx, project); err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var files []adapter.MultipartFile
	if report != nil {
		if err := p.validator.Validate(ctx, validators.Report(*report)); err != nil {
			return models.Project{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		files = append(files, adapter.MultipartFile{Field: "pdf_file", Name: report.Name, Reader: report.Reader})
	}

	resp, err := p.transport.Post(ctx, "/projects/", nil, adapter.WithMultipart(project.FormFields(), files...))
	return decode[models.Project]("create project", resp, err)
}

func (p *clientProjectService) Update(ctx context.Context, projectID int64, update models.ProjectUpdate) (models.Project, error) {
	if update.PrivacyLevel != nil && !update.PrivacyLevel.Valid() {
		return models.Project{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidPrivacyLevel)
	}

	resp, err := p.transport.Put(ctx, fmt.Sprintf("/projects/%d", projectID), update)
	return decode[models.Project](fmt.Sprintf("update project %d", projectID), resp, err)
}

func (p *clientProjectService) Delete(ctx context.Context, projectID int64) error {
	if _, err := p.transport.Delete(ctx, fmt.Sprintf("/projects/%d", projectID)); err != nil {
		return fmt.Errorf("delete project %d: %w", projectID, err)
	}
	return nil
}
