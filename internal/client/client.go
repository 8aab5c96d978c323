// Package client talks to the financial goals API over HTTP.
package client

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
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fyzahq/fyza/internal/model"
)

const goalsPath = "/api/financial-goals"

const (
	defaultRetries    = 3
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	writes     *rate.Limiter
	maxRetries int
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is never
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero keeps the http.Client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithWriteRate paces POST, PUT and DELETE requests to rps per second with
// the given burst, matching the server's per-IP write limit. Zero rps
// disables pacing.
func WithWriteRate(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.writes = nil
			return
		}
		c.writes = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithRetries sets how many times a request answered with 429 is retried
// after the server's Retry-After delay.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// New creates a client for the API rooted at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc

	return c, nil
}

func (c *Client) ListGoals(ctx context.Context, ownerID int64) ([]model.FinancialGoal, error) {
	var goals []model.FinancialGoal
	err := c.do(ctx, http.MethodGet, goalsPath+"/"+strconv.FormatInt(ownerID, 10), nil, &goals)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial goals: %w", err)
	}
	if goals == nil {
		goals = []model.FinancialGoal{}
	}
	return goals, nil
}

func (c *Client) CreateGoal(ctx context.Context, in model.GoalInput) (*model.FinancialGoal, error) {
	var goal model.FinancialGoal
	err := c.do(ctx, http.MethodPost, goalsPath+"/", in, &goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create financial goal: %w", err)
	}
	return &goal, nil
}

func (c *Client) UpdateGoal(ctx context.Context, goalID string, u model.GoalUpdate) (*model.FinancialGoal, error) {
	var goal model.FinancialGoal
	err := c.do(ctx, http.MethodPut, goalsPath+"/"+url.PathEscape(goalID), u, &goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update financial goal: %w", err)
	}
	return &goal, nil
}

func (c *Client) DeleteGoal(ctx context.Context, goalID string) error {
	err := c.do(ctx, http.MethodDelete, goalsPath+"/"+url.PathEscape(goalID), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete financial goal: %w", err)
	}
	return nil
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
// Writes wait for the write limiter, and 429 responses are retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = buf.Bytes()
	}

	for attempt := 0; ; attempt++ {
		if c.writes != nil && method != http.MethodGet {
			if err := c.writes.Wait(ctx); err != nil {
				return err
			}
		}

		resp, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := retryAfter(resp)
			drain(resp)

			slog.Debug("api rate limited, retrying", "method", method, "path", path, "delay", delay, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		return c.finish(resp, out)
	}
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) finish(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// retryAfter reads a Retry-After given in seconds, capped at maxRetryDelay
func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After")))
	if err != nil || secs < 0 {
		return defaultRetryDelay
	}
	return min(time.Duration(secs)*time.Second, maxRetryDelay)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}

	if json.Unmarshal(raw, &body) == nil && len(body.Detail) > 0 {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			apiErr.Detail = s
		} else {
			apiErr.Detail = string(body.Detail)
		}
	} else {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}
