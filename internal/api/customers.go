package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type CustomerFilters struct {
	Status string
	Search string
}

func (f CustomerFilters) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

type CustomerService struct {
	c *Client
}

func (s *CustomerService) List(ctx context.Context, filters CustomerFilters) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := s.c.do(ctx, http.MethodGet, "/customers", filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	var out domain.Customer
	if err := s.c.do(ctx, http.MethodGet, "/customers/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Create(ctx context.Context, draft domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	if err := s.c.do(ctx, http.MethodPost, "/customers", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, patch domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	if err := s.c.do(ctx, http.MethodPut, "/customers/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil, nil)
}

// ToggleImportant flips the important flag server-side and returns the
// updated entity.
func (s *CustomerService) ToggleImportant(ctx context.Context, id string) (*domain.Customer, error) {
	var out domain.Customer
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/customers/%s/important", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
