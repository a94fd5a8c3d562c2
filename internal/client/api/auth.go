package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/voicenotes/internal/dto"
)

// Signup registers an account. It does not log in.
func (c *Client) Signup(ctx context.Context, email, password string) (dto.User, error) {
	r, err := jsonRequest(http.MethodPost, dto.PathSignup, dto.Credentials{Email: email, Password: password})
	if err != nil {
		return dto.User{}, err
	}

	var resp dto.SignupResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return dto.User{}, err
	}
	return resp.NewUser, nil
}

// Login authenticates and keeps the session token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	r, err := jsonRequest(http.MethodPost, dto.PathLogin, dto.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	var resp dto.LoginResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}
