package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

type clientCourseService struct {
	transport adapter.Transport
	validator validators.Validator
}

func NewClientCourseService(transport adapter.Transport, validator validators.Validator) ClientCourseService {
	return &clientCourseService{transport: transport, validator: validator}
}

func (c *clientCourseService) List(ctx context.Context) ([]models.CourseSummary, error) {
	resp, err := c.transport.Get(ctx, "/courses")
	return decode[[]models.CourseSummary]("list courses", resp, err)
}

func (c *clientCourseService) Get(ctx context.Context, courseID int64) (models.Course, error) {
	resp, err := c.transport.Get(ctx, fmt.Sprintf("/courses/%d", courseID))
	return decode[models.Course](fmt.Sprintf("get course %d", courseID), resp, err)
}

func (c *clientCourseService) Create(ctx context.Context, course models.CourseCreate) (models.Course, error) {
	if err := c.validator.Validate(ctx, course); err != nil {
		return models.Course{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := c.transport.Post(ctx, "/courses", course)
	return decode[models.Course]("create course", resp, err)
}

func (c *clientCourseService) Update(ctx context.Context, courseID int64, update models.CourseUpdate) (models.Course, error) {
	resp, err := c.transport.Put(ctx, fmt.Sprintf("/courses/%d", courseID), update)
	return decode[models.Course](fmt.Sprintf("update course %d", courseID), resp, err)
}

func (c *clientCourseService) Delete(ctx context.Context, courseID int64) error {
	if _, err := c.transport.Delete(ctx, fmt.Sprintf("/courses/%d", courseID)); err != nil {
		return fmt.Errorf("delete course %d: %w", courseID, err)
	}
	return nil
}

func (c *clientCourseService) Search(ctx context.Context, query string) ([]models.CourseSummary, error) {
	resp, err := c.transport.Get(ctx, "/courses/search/", adapter.WithQuery(url.Values{"q": {query}}))
	return decode[[]models.CourseSummary]("search courses", resp, err)
}
