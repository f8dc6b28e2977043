package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

type clientAccessService struct {
	transport adapter.Transport
	validator validators.Validator
}

func NewClientAccessService(transport adapter.Transport, validator validators.Validator) ClientAccessService {
	return &clientAccessService{transport: transport, validator: validator}
}

func (s *clientAccessService) Request(ctx context.Context, projectID int64, message string) (models.AccessRequest, error) {
	if projectID <= 0 {
		return models.AccessRequest{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidID)
	}

	resp, err := s.transport.Post(ctx, "/access/", models.AccessRequestCreate{ProjectID: projectID, Message: message})
	return decode[models.AccessRequest](fmt.Sprintf("request access to project %d", projectID), resp, err)
}

func (s *clientAccessService) Mine(ctx context.Context) ([]models.AccessRequestSummary, error) {
	resp, err := s.transport.Get(ctx, "/access/my-requests")
	return decode[[]models.AccessRequestSummary]("list my access requests", resp, err)
}

func (s *clientAccessService) ForMyProjects(ctx context.Context) ([]models.AccessRequestSummary, error) {
	resp, err := s.transport.Get(ctx, "/access/for-my-projects")
	return decode[[]models.AccessRequestSummary]("list incoming access requests", resp, err)
}

func (s *clientAccessService) Get(ctx context.Context, requestID int64) (models.AccessRequest, error) {
	resp, err := s.transport.Get(ctx, fmt.Sprintf("/access/%d", requestID))
	return decode[models.AccessRequest](fmt.Sprintf("get access request %d", requestID), resp, err)
}

func (s *clientAccessService) Respond(ctx context.Context, requestID int64, respond models.AccessRequestRespond) (models.AccessRequest, error) {
	if err := s.validator.Validate(ctx, respond); err != nil {
		return models.AccessRequest{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := s.transport.Post(ctx, fmt.Sprintf("/access/%d/respond", requestID), respond)
	return decode[models.AccessRequest](fmt.Sprintf("respond to access request %d", requestID), resp, err)
}

func (s *clientAccessService) Cancel(ctx context.Context, requestID int64) error {
	if _, err := s.transport.Delete(ctx, fmt.Sprintf("/access/%d", requestID)); err != nil {
		return fmt.Errorf("cancel access request %d: %w", requestID, err)
	}
	return nil
}

func (s *clientAccessService) Check(ctx context.Context, projectID int64) (models.AccessCheck, error) {
	resp, err := s.transport.Get(ctx, fmt.Sprintf("/access/check/%d", projectID))
	return decode[models.AccessCheck](fmt.Sprintf("check access to project %d", projectID), resp, err)
}
