// Package identity talks to the hosted auth provider (Supabase GoTrue):
// it creates credentials on registration and verifies the access tokens it issues.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client creates users through the GoTrue REST API.
type Client struct {
	http        *resty.Client
	redirectURL string
}

type ClientConfig struct {
	BaseURL     string
	AnonKey     string
	RedirectURL string
	Timeout     time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json")
	if cfg.AnonKey != "" {
		httpClient.SetAuthToken(cfg.AnonKey)
	}

	return &Client{
		http:        httpClient,
		redirectURL: cfg.RedirectURL,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// signUpResponse covers both shapes GoTrue returns: the bare user when email
// confirmation is required, and a session wrapping the user otherwise.
type signUpResponse struct {
	gotrueUser
	User *gotrueUser `json:"user"`
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e *gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignUp registers email/password credentials and returns the new user's id.
// A rejected sign-up returns the provider's own message.
func (c *Client) SignUp(ctx context.Context, email, password string) (uuid.UUID, error) {
	var (
		out     signUpResponse
		failure gotrueError
	)

	req := c.http.R().
		SetContext(ctx).
		SetBody(signUpRequest{Email: email, Password: password}).
		SetResult(&out).
		SetError(&failure)
	if c.redirectURL != "" {
		req.SetQueryParam("redirect_to", c.redirectURL)
	}

	resp, err := req.Post("/auth/v1/signup")
	if err != nil {
		return uuid.Nil, fmt.Errorf("sign up request: %w", err)
	}
	if resp.IsError() {
		if msg := failure.text(); msg != "" {
			return uuid.Nil, errors.New(msg)
		}
		return uuid.Nil, fmt.Errorf("sign up failed: %s", http.StatusText(resp.StatusCode()))
	}

	rawID := out.ID
	if out.User != nil && out.User.ID != "" {
		rawID = out.User.ID
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("sign up returned invalid user id %q: %w", rawID, err)
	}

	return id, nil
}
