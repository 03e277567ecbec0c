package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the hosted aggregation service.
const DefaultBaseURL = "https://mondai-backend.nao-onion.workers.dev"

// Client talks to the result aggregation service. It keeps no cache and
// does not deduplicate in-flight requests.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
	log     logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetryPolicy overrides the submission retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logrus.FieldLogger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		retry:   DefaultRetryPolicy(),
		log:     silent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.baseURL }

// RetryPolicy returns the policy used by SubmitWithRetry.
func (c *Client) RetryPolicy() RetryPolicy { return c.retry }

// Submit posts a result once.
func (c *Client) Submit(ctx context.Context, payload ResultPayload) (*SubmitResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/results", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out SubmitResponse
	if err := c.do(req, "submit", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitWithRetry posts a result, retrying failures with exponential
// backoff per the client's policy.
func (c *Client) SubmitWithRetry(ctx context.Context, payload ResultPayload) (*SubmitResponse, error) {
	return c.SubmitWithPolicy(ctx, payload, c.retry)
}

// SubmitWithPolicy is SubmitWithRetry with an explicit policy.
func (c *Client) SubmitWithPolicy(ctx context.Context, payload ResultPayload, p RetryPolicy) (*SubmitResponse, error) {
	attempt := 0
	return Retry(ctx, p, func(ctx context.Context) (*SubmitResponse, error) {
		attempt++
		resp, err := c.Submit(ctx, payload)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"set_id":       payload.SetID,
				"attempt":      attempt,
				"max_attempts": p.MaxAttempts,
			}).Warn("result submission failed")
		}
		return resp, err
	})
}

// FetchResult retrieves a stored result by id.
func (c *Client) FetchResult(ctx context.Context, id string) (*StoredResult, error) {
	u := c.baseURL + "/api/results/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	var out StoredResult
	if err := c.do(req, "fetch result", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchStats retrieves aggregate statistics for one version of a set.
func (c *Client) FetchStats(ctx context.Context, setID string, version int) (*SetStats, error) {
	q := url.Values{}
	q.Set("version", strconv.Itoa(version))
	u := fmt.Sprintf("%s/api/sets/%s/stats?%s", c.baseURL, url.PathEscape(setID), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	var out SetStats
	if err := c.do(req, "fetch stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, action string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp, action)
	}

	// An empty 2xx body decodes to the zero value.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", action, err)
	}
	return nil
}
