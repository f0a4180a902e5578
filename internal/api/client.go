// Package api is the HTTP client for the question-answering backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/zhubert/askdesk/internal/errors"
	"github.com/zhubert/askdesk/internal/logger"
)

const (
	topicsPath = "/api/topics"
	chatPath   = "/api/chat"
	healthPath = "/api/health"
)

// Topic is one subject area the backend can answer questions about.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query      string `json:"query"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ChatResponse is the body returned by POST /api/chat. Sources are
// "<name> (score=<float>)" strings in backend order.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Error   string   `json:"error,omitempty"`
}

// HealthStatus is the body returned by GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// topicsResponse wraps the catalog list. Topics is nil when the key is
// missing or null.
type topicsResponse struct {
	Topics *[]Topic `json:"topics"`
}

var errNoTopicList = errors.New("topics list missing")

// errorResponse is the shape of a failed request body.
type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the backend. It never retries and sets no timeout of its
// own; callers bound requests through the context if they need to.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.ComponentLogger("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Topics fetches the topic catalog. Order is preserved as received.
func (c *Client) Topics(ctx context.Context) ([]Topic, error) {
	const op = apperrors.Op("api.Topics")

	body, err := c.do(ctx, op, http.MethodGet, topicsPath, nil)
	if err != nil {
		return nil, err
	}

	var resp topicsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn("topic catalog is not valid JSON", "error", err)
		return nil, apperrors.DecodeFailed(op, err)
	}
	if resp.Topics == nil {
		c.log.Warn("topic catalog has no topics list")
		return nil, apperrors.DecodeFailed(op, errNoTopicList)
	}

	topics := *resp.Topics
	if topics == nil {
		topics = []Topic{}
	}
	c.log.Debug("topics loaded", "count", len(topics))
	return topics, nil
}

// Chat sends one question and returns the answer. A non-empty error field
// is a failure even on a 2xx status.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	const op = apperrors.Op("api.Chat")

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.E(op, apperrors.KindInvalid, "failed to encode request", err)
	}

	body, err := c.do(ctx, op, http.MethodPost, chatPath, payload)
	if err != nil {
		return nil, err
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn("chat response is not valid JSON", "error", err)
		return nil, apperrors.DecodeFailed(op, err)
	}
	if resp.Error != "" {
		c.log.Warn("backend reported error", "topic", req.Topic, "error", resp.Error)
		return nil, apperrors.BackendError(op, resp.Error)
	}

	c.log.Debug("answer received", "topic", req.Topic, "sources", len(resp.Sources))
	return &resp, nil
}

// Health reports whether the backend is up.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	const op = apperrors.Op("api.Health")

	body, err := c.do(ctx, op, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, apperrors.DecodeFailed(op, err)
	}
	return &status, nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op apperrors.Op, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.E(op, apperrors.KindInvalid, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "url", url, "error", err)
		return nil, apperrors.RequestFailed(op, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.RequestFailed(op, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := statusDetail(body)
		c.log.Warn("unexpected status", "method", method, "url", url, "status", resp.StatusCode, "detail", detail)
		return nil, apperrors.UnexpectedStatus(op, resp.StatusCode, detail)
	}

	return body, nil
}

// statusDetail extracts the error text from a failed response body, if any.
func statusDetail(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}
