package apiclient

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/domain/dto"
)

type (
	RegisterRequest = dto.RegisterRequest
	LoginRequest    = dto.LoginRequest
	TokenResponse   = dto.TokenResponse
	UserResponse    = dto.UserResponse
	MessageResponse = dto.MessageResponse
)

// Register регистрирует пользователя и запоминает токен
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Login входит в систему и запоминает токен
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Logout выходит из системы. Токен забывается даже при ошибке запроса.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// Me профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
