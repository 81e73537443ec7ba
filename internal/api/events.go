package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type EventFilters struct {
	Type   string
	Status string
	Date   string // YYYY-MM-DD
}

func (f EventFilters) values() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("event_type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	return q
}

type EventService struct {
	c *Client
}

func (s *EventService) List(ctx context.Context, filters EventFilters) ([]domain.Event, error) {
	var out []domain.Event
	if err := s.c.do(ctx, http.MethodGet, "/events", filters.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	var out domain.Event
	if err := s.c.do(ctx, http.MethodGet, "/events/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) Create(ctx context.Context, draft domain.Event) (*domain.Event, error) {
	var out domain.Event
	if err := s.c.do(ctx, http.MethodPost, "/events", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) Update(ctx context.Context, id string, patch domain.Event) (*domain.Event, error) {
	var out domain.Event
	if err := s.c.do(ctx, http.MethodPut, "/events/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/events/"+id, nil, nil, nil)
}

// MarkCompleted transitions an event to completed and returns the updated
// entity.
func (s *EventService) MarkCompleted(ctx context.Context, id string) (*domain.Event, error) {
	var out domain.Event
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/events/%s/complete", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Today lists events scheduled for the current day.
func (s *EventService) Today(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	if err := s.c.do(ctx, http.MethodGet, "/events/today/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upcoming lists events within the next days days.
func (s *EventService) Upcoming(ctx context.Context, days int) ([]domain.Event, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []domain.Event
	if err := s.c.do(ctx, http.MethodGet, "/events/upcoming/list", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
