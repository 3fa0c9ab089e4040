package service

import (
	"context"

	"github.com/eventbooker/webclient/internal/api"
	"github.com/eventbooker/webclient/internal/entity"
	"github.com/eventbooker/webclient/internal/session"

	"github.com/sirupsen/logrus"
)

// LoginRequest represents the credentials posted to /auth/login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest represents the profile posted to /auth/register
type RegisterRequest struct {
	FullName string      `json:"full_name" form:"name" binding:"required,min=2"`
	Email    string      `json:"email" form:"email" binding:"required,email"`
	Password string      `json:"password" form:"password" binding:"required,min=6"`
	Role     entity.Role `json:"role,omitempty" form:"role" binding:"omitempty,oneof=admin user"`
}

// AuthResponse is the wire shape returned by both auth endpoints. The
// profile may carry the display name in either fullName or name.
type AuthResponse struct {
	User        AuthUser `json:"user"`
	AccessToken string   `json:"access_token"`
	Message     string   `json:"message,omitempty"`
}

type AuthUser struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName,omitempty"`
	Name     string      `json:"name,omitempty"`
	Role     entity.Role `json:"role"`
}

func (u *AuthUser) normalize() *entity.User {
	name := u.FullName
	if name == "" {
		name = u.Name
	}
	return &entity.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  name,
		Role:  u.Role,
	}
}

type authService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, sess session.Store, req *LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.Post(ctx, "", "/auth/login", req, &resp); err != nil {
		logrus.WithField("email", req.Email).Errorf("login failed: %v", err)
		return nil, err
	}

	if resp.AccessToken != "" {
		sess.SetSession(resp.AccessToken, resp.User.normalize())
	}

	return &resp, nil
}

func (s *authService) Register(ctx context.Context, sess session.Store, req *RegisterRequest) (*AuthResponse, error) {
	if req.Role == "" {
		req.Role = entity.RoleUser
	}

	var resp AuthResponse
	if err := s.client.Post(ctx, "", "/auth/register", req, &resp); err != nil {
		logrus.WithField("email", req.Email).Errorf("registration failed: %v", err)
		return nil, err
	}

	if resp.AccessToken != "" {
		sess.SetSession(resp.AccessToken, resp.User.normalize())
	}

	return &resp, nil
}

// Logout clears the persisted session. Purely local, no network call.
func (s *authService) Logout(sess session.Store) {
	sess.ClearSession()
}
