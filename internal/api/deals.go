package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type DealFilters struct {
	Status string
	Search string
}

func (f DealFilters) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

type DealService struct {
	c *Client
}

func (s *DealService) List(ctx context.Context, filters DealFilters) ([]domain.Deal, error) {
	var out []domain.Deal
	if err := s.c.do(ctx, http.MethodGet, "/deals", filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DealService) Get(ctx context.Context, id string) (*domain.Deal, error) {
	var out domain.Deal
	if err := s.c.do(ctx, http.MethodGet, "/deals/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DealService) Create(ctx context.Context, draft domain.Deal) (*domain.Deal, error) {
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Deal
	if err := s.c.do(ctx, http.MethodPost, "/deals", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DealService) Update(ctx context.Context, id string, patch domain.Deal) (*domain.Deal, error) {
	if err := patch.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Deal
	if err := s.c.do(ctx, http.MethodPut, "/deals/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DealService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/deals/"+id, nil, nil, nil)
}

// BrokerageAnalytics returns the monthly brokerage series the analytics
// screen charts.
func (s *DealService) BrokerageAnalytics(ctx context.Context) ([]domain.BrokerageMonth, error) {
	var out struct {
		BrokerageData []domain.BrokerageMonth `json:"brokerage_data"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/deals/analytics/brokerage", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.BrokerageData, nil
}
