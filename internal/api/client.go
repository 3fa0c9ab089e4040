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

	"github.com/eventbooker/webclient/config"
	"github.com/eventbooker/webclient/internal/entity"

	"github.com/sirupsen/logrus"
)

// Error carries the HTTP status and the server-provided message for a
// failed API call. A 401 matches entity.ErrUnauthorized under errors.Is
// so callers can trigger the global session invalidation.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == entity.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client is the single outbound gateway to the remote booking API.
// It is stateless: the bearer token is supplied per call by the
// session store, never cached here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	return c.do(ctx, token, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, token, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, token, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, token, path string) error {
	return c.do(ctx, token, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Error(apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
