package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/ports"
)

// AuthService implements ports.AuthAPI against the remote backend.
type AuthService struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates, persists the returned bearer token, and decodes the
// identity from the token payload. There is no separate profile fetch.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	var out tokenResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out, "auth", "login"); err != nil {
		return nil, err
	}
	return s.adopt(out.Token)
}

// Signup creates the account through the admin or regular endpoint depending
// on the IsAdmin flag, then adopts the returned token exactly like Login.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.AuthUser, error) {
	endpoint := "/auth/signup/user"
	if input.IsAdmin {
		endpoint = "/auth/signup/admin"
	}

	var out tokenResponse
	req := signupRequest{Email: input.Email, Password: input.Password, Name: input.Name, IsAdmin: input.IsAdmin}
	if err := s.c.do(ctx, http.MethodPost, endpoint, req, &out, "auth", "signup"); err != nil {
		return nil, err
	}
	return s.adopt(out.Token)
}

// Logout discards the stored token. No server round-trip.
func (s *AuthService) Logout() error {
	return s.c.tokens.Clear()
}

// adopt stores the token, then decodes the identity out of it. A token that
// does not decode is discarded again so a broken session cannot stick.
func (s *AuthService) adopt(token string) (*domain.AuthUser, error) {
	if err := s.c.tokens.Save(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	user, err := DecodeAuthUser(token)
	if err != nil {
		_ = s.c.tokens.Clear()
		return nil, err
	}
	return user, nil
}
