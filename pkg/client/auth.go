package client

import (
	"context"
	"net/http"
)

// AuthService handles authentication API calls.
type AuthService struct {
	client *Client
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and stores the returned token on the client.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}
	s.client.SetToken(resp.AccessToken)
	return &resp, nil
}

// Login authenticates and stores the returned token on the client.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	s.client.SetToken(resp.AccessToken)
	return &resp, nil
}

// Me returns the authenticated account.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
