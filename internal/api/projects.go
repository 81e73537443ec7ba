package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type ProjectFilters struct {
	Area   string
	Search string
}

func (f ProjectFilters) values() url.Values {
	q := url.Values{}
	if f.Area != "" {
		q.Set("area", f.Area)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// PlotFilters narrow the plot listing of one project.
type PlotFilters struct {
	Status string
}

func (f PlotFilters) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

type ProjectService struct {
	c *Client
}

func (s *ProjectService) List(ctx context.Context, filters ProjectFilters) ([]domain.Project, error) {
	var out []domain.Project
	if err := s.c.do(ctx, http.MethodGet, "/projects", filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	var out domain.Project
	if err := s.c.do(ctx, http.MethodGet, "/projects/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectService) Create(ctx context.Context, draft domain.Project) (*domain.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Project
	if err := s.c.do(ctx, http.MethodPost, "/projects", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Project) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Project
	if err := s.c.do(ctx, http.MethodPut, "/projects/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}

// Plots lists the plots of a project, optionally narrowed by status.
func (s *ProjectService) Plots(ctx context.Context, projectID string, filters PlotFilters) ([]domain.Plot, error) {
	var out []domain.Plot
	path := fmt.Sprintf("/projects/%s/plots", projectID)
	if err := s.c.do(ctx, http.MethodGet, path, filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPlot appends a plot to a project and returns the updated project.
func (s *ProjectService) AddPlot(ctx context.Context, projectID string, plot domain.Plot) (*domain.Project, error) {
	if err := plot.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Project
	path := fmt.Sprintf("/projects/%s/plots", projectID)
	if err := s.c.do(ctx, http.MethodPost, path, nil, plot, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlot replaces a plot identified by its project-unique number.
func (s *ProjectService) UpdatePlot(ctx context.Context, projectID, plotNumber string, plot domain.Plot) (*domain.Project, error) {
	if err := plot.Validate(); err != nil {
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	var out domain.Project
	path := fmt.Sprintf("/projects/%s/plots/%s", projectID, plotNumber)
	if err := s.c.do(ctx, http.MethodPut, path, nil, plot, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddPayment appends a payment record to a plot.
func (s *ProjectService) AddPayment(ctx context.Context, projectID, plotNumber string, payment domain.Payment) (*domain.Project, error) {
	var out domain.Project
	path := fmt.Sprintf("/projects/%s/plots/%s/payments", projectID, plotNumber)
	if err := s.c.do(ctx, http.MethodPost, path, nil, payment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkUploadPlots sends a batch of plots in one request.
func (s *ProjectService) BulkUploadPlots(ctx context.Context, projectID string, plots []domain.Plot) (*domain.Project, error) {
	for i := range plots {
		if err := plots[i].Validate(); err != nil {
			return nil, &ValidationError{Status: http.StatusBadRequest, Message: err.Error()}
		}
	}
	var out domain.Project
	path := fmt.Sprintf("/projects/%s/bulk-upload", projectID)
	if err := s.c.do(ctx, http.MethodPost, path, nil, map[string]any{"plots": plots}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
