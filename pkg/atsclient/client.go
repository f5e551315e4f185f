// Package atsclient is a typed HTTP client for the hrdash interview API.
// Semantic server errors (4xx/5xx with a decoded body) surface as *APIError;
// anything else (no response, timeout, connection refused) comes back as a
// transport error, and IsNetworkError tells the two classes apart.
package atsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/riddhisc/hrdash/pkg/models"
)

// APIError is a semantic error returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNetworkError reports whether err is a network-class failure rather than
// a semantic server response.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr)
}

// Client calls the interview endpoints with a bearer token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by atsclient. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// NewClient creates a client for the given API base URL. A nil httpClient
// gets a 15 second default timeout.
func NewClient(baseURL, token string, httpClient *http.Client) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  httpClient,
	}, nil
}

// SetToken replaces the bearer token, e.g. after re-login.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := resp.Status
		var e struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&e); decodeErr == nil && e.Message != "" {
			msg = e.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) ListInterviews(ctx context.Context) ([]models.Interview, error) {
	var out []models.Interview
	if err := c.do(ctx, http.MethodGet, "/api/interviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodGet, "/api/interviews/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateInterview(ctx context.Context, iv models.Interview) (*models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodPost, "/api/interviews", iv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PatchInterview(ctx context.Context, id string, iv models.Interview) (*models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodPatch, "/api/interviews/"+url.PathEscape(id), iv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateInterviewStatus(ctx context.Context, id string, status models.InterviewStatus) (*models.Interview, error) {
	var out models.Interview
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/api/interviews/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitInterviewFeedback(ctx context.Context, id string, fb models.Feedback) (*models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodPut, "/api/interviews/"+url.PathEscape(id)+"/feedback", fb, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInterview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/interviews/"+url.PathEscape(id), nil, nil)
}
