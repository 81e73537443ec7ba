package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

type DashboardService struct {
	c *Client
}

// Stats returns the role-shaped dashboard summary. The endpoint serves a
// different payload per role, so the raw body is kept alongside both
// decodings and the caller picks by session role.
type Stats struct {
	Broker  *domain.BrokerStats
	Builder *domain.BuilderStats
}

func (s *DashboardService) Stats(ctx context.Context, role domain.Role) (*Stats, error) {
	var raw json.RawMessage
	if err := s.c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &raw); err != nil {
		return nil, err
	}

	out := &Stats{}
	switch role {
	case domain.RoleBuilder:
		var b domain.BuilderStats
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		out.Builder = &b
	default:
		var b domain.BrokerStats
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		out.Broker = &b
	}
	return out, nil
}
