package cli

import (
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Facet option lists fetched once per TUI session.
	Areas []string
	Types []string

	// Unread notification badge for the header.
	UnreadCount int
}

// Role returns the signed-in account's role.
func (s *SharedState) Role() domain.Role {
	return s.App.Session.Role()
}

// UserName returns the signed-in account's display name.
func (s *SharedState) UserName() string {
	if u, ok := s.App.Session.User(); ok {
		return u.FullName
	}
	return ""
}
