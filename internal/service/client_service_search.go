package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/models"
)

type clientSearchService struct {
	transport adapter.Transport
}

func NewClientSearchService(transport adapter.Transport) ClientSearchService {
	return &clientSearchService{transport: transport}
}

func (s *clientSearchService) Search(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectSummary, error) {
	resp, err := s.transport.Get(ctx, "/search", adapter.WithQuery(filter.Values()))
	return decode[[]models.ProjectSummary]("search projects", resp, err)
}

func (s *clientSearchService) Suggestions(ctx context.Context, query string, limit int) (models.SearchSuggestions, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	resp, err := s.transport.Get(ctx, "/search/suggestions", adapter.WithQuery(params))
	return decode[models.SearchSuggestions]("search suggestions", resp, err)
}

func (s *clientSearchService) Filters(ctx context.Context) (models.SearchFilters, error) {
	resp, err := s.transport.Get(ctx, "/search/filters")
	return decode[models.SearchFilters]("search filters", resp, err)
}

func (s *clientSearchService) Advanced(ctx context.Context, search models.ProjectSearch) ([]models.ProjectSummary, error) {
	if search.Limit <= 0 {
		search.Limit = 20
	}
	resp, err := s.transport.Post(ctx, "/search/advanced", search)
	return decode[[]models.ProjectSummary]("advanced search", resp, err)
}

func (s *clientSearchService) PopularTags(ctx context.Context, limit int) ([]models.TagCount, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	resp, err := s.transport.Get(ctx, "/search/popular-tags", adapter.WithQuery(params))
	return decode[[]models.TagCount]("popular tags", resp, err)
}
