package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type NotificationService struct {
	c *Client
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := s.c.do(ctx, http.MethodGet, "/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationService) Create(ctx context.Context, draft domain.Notification) (*domain.Notification, error) {
	var out domain.Notification
	if err := s.c.do(ctx, http.MethodPost, "/notifications", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkRead marks one notification read and returns the updated entity.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	var out domain.Notification
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%s/read", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllRead marks every notification read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPatch, "/notifications/mark-all-read", nil, nil, nil)
}

func (s *NotificationService) Remove(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/notifications/"+id, nil, nil, nil)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/notifications/unread/count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
