package api

import (
	"context"
	"net/http"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// TokenResponse is the payload returned by login and signup.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirm_password"`
	FullName        string      `json:"full_name"`
	Phone           string      `json:"phone,omitempty"`
	Role            domain.Role `json:"role"`
}

type AuthService struct {
	c *Client
}

// Login exchanges credentials for a token. The caller is responsible for
// establishing the session from the response.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out TokenResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account and returns its first token.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile behind the current token.
func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
