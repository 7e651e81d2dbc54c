// Package api implements the HTTP client for the remote wellness survey
// service: employee login, survey listing, survey content, answer submission,
// and completion notification.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/survey"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api-backend-shy-hill-7779.fly.dev/api/v1"

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response. The server returns human-readable bodies,
// so Body is surfaced to the user as the error message.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

// Client talks to the remote survey API. A token set via SetToken is sent as
// the Authorization header on every authenticated call.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithToken sets the auth token at construction time.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger attaches a logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given base URL. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the auth token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates an employee and returns the access token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/application/login/employee", LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("no accessToken returned from API")
	}
	return &out, nil
}

// Surveys fetches the employee's survey list with per-survey progress
// projections.
func (c *Client) Surveys(ctx context.Context) ([]SurveyListEntry, error) {
	var out []SurveyListEntry
	if err := c.do(ctx, http.MethodGet, "/application/surveys", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Survey fetches the full definition for one survey id.
func (c *Client) Survey(ctx context.Context, surveyID string) (*survey.Definition, error) {
	var out survey.Definition
	path := "/survey/" + url.PathEscape(surveyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Respond submits a single answer.
func (c *Client) Respond(ctx context.Context, sub Submission) error {
	return c.do(ctx, http.MethodPost, "/application/surveys/respond", sub, nil)
}

// Complete notifies the server that a survey is finished. Callers treat this
// as fire-and-forget; the local terminal state stands even when it fails.
func (c *Client) Complete(ctx context.Context, surveyID, userID string) error {
	path := "/application/surveys/complete/" + url.PathEscape(surveyID) + "/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do executes one request. A nil body sends no payload; a nil out discards
// the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(text)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
