package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// PropertyFilters are passed through as query parameters. The server is
// not assumed to honor every filter; the same constraints are re-applied
// client-side by the query engine.
type PropertyFilters struct {
	Area   string
	Type   string
	Status string
	Search string
}

func (f PropertyFilters) values() url.Values {
	q := url.Values{}
	if f.Area != "" {
		q.Set("area", f.Area)
	}
	if f.Type != "" {
		q.Set("property_type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

type PropertyService struct {
	c *Client
}

func (s *PropertyService) List(ctx context.Context, filters PropertyFilters) ([]domain.Property, error) {
	var out []domain.Property
	if err := s.c.do(ctx, http.MethodGet, "/properties", filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	if err := s.c.do(ctx, http.MethodGet, "/properties/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertyService) Create(ctx context.Context, draft domain.Property) (*domain.Property, error) {
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Property
	if err := s.c.do(ctx, http.MethodPost, "/properties", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, patch domain.Property) (*domain.Property, error) {
	if err := patch.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Property
	if err := s.c.do(ctx, http.MethodPut, "/properties/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertyService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/properties/"+id, nil, nil, nil)
}

// ToggleHot flips the hot flag server-side and returns the updated entity.
// The server owns the new value; it may refuse the flip under its own
// business rules, so the response is never computed locally.
func (s *PropertyService) ToggleHot(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/properties/%s/hot", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Areas returns the distinct localities across the account's listings.
func (s *PropertyService) Areas(ctx context.Context) ([]string, error) {
	var out struct {
		Areas []string `json:"areas"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/properties/areas/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Areas, nil
}

// Types returns the distinct property types across the account's listings.
func (s *PropertyService) Types(ctx context.Context) ([]string, error) {
	var out struct {
		Types []string `json:"types"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/properties/types/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Types, nil
}
