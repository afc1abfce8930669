package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Login POST /auth/login → {token}.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out dto.LoginResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/auth/login",
		path:     "/auth/login",
		body:     dto.LoginRequest{Email: email, Password: password},
		fallback: "Error en el login",
		fields:   []string{"data"},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: /auth/login sin token", domain.ErrMalformedResponse)
	}
	return out.Token, nil
}

// Profile GET /auth/profile → {user}. Un 401 se reporta como domain.ErrSessionExpired.
func (c *Client) Profile(ctx context.Context, token string) (*entity.User, error) {
	var out entity.User
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/auth/profile",
		path:     "/auth/profile",
		token:    token,
		fallback: "Error al obtener el perfil",
		fields:   []string{"user", "data"},
	}, &out)
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterUser POST /auth/register.
func (c *Client) RegisterUser(ctx context.Context, token string, in dto.RegisterUserRequest) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/auth/register",
		path:     "/auth/register",
		token:    token,
		body:     in,
		fallback: "Error en el registro",
		fields:   []string{"user", "data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers GET /auth/list-users → {users}.
func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	out := []entity.User{}
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/auth/list-users",
		path:     "/auth/list-users",
		token:    token,
		fallback: "Error al obtener usuarios",
		fields:   []string{"users", "data"},
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile PUT /auth/profile/:id → {user}.
func (c *Client) UpdateProfile(ctx context.Context, token string, userID int, in dto.UpdateUserRequest) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "/auth/profile/:id",
		path:     fmt.Sprintf("/auth/profile/%d", userID),
		token:    token,
		body:     in,
		fallback: "Error al actualizar perfil",
		fields:   []string{"user", "data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
