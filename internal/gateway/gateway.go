package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the backend answers 404 (e.g. an unknown
// order code or a cart the server has already consumed).
var ErrNotFound = errors.New("not found")

// APIError is a structured 4xx/5xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// FailureCounter counts consecutive gateway call failures and fires a
// subscriber callback once the threshold is reached, then resets. It is
// injected into the client so the trigger behavior stays explicit and
// scoped rather than hidden module-global state.
type FailureCounter struct {
	mu          sync.Mutex
	count       int
	threshold   int
	onThreshold func()
}

// NewFailureCounter creates a counter firing onThreshold after the given
// number of consecutive failures. onThreshold may be nil.
func NewFailureCounter(threshold int, onThreshold func()) *FailureCounter {
	if threshold < 1 {
		threshold = 1
	}
	return &FailureCounter{threshold: threshold, onThreshold: onThreshold}
}

// RecordFailure increments the counter and fires the callback at the
// threshold. The counter resets after firing.
func (f *FailureCounter) RecordFailure() {
	f.mu.Lock()
	f.count++
	fire := f.count >= f.threshold
	if fire {
		f.count = 0
	}
	cb := f.onThreshold
	f.mu.Unlock()

	if fire && cb != nil {
		cb()
	}
}

// RecordSuccess resets the consecutive-failure count.
func (f *FailureCounter) RecordSuccess() {
	f.mu.Lock()
	f.count = 0
	f.mu.Unlock()
}

// Count returns the current consecutive-failure count.
func (f *FailureCounter) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Config holds the backend endpoints and admin credentials.
// AdminAPIURL is optional; when empty, admin requests use APIURL.
type Config struct {
	APIURL      string
	AdminAPIURL string
	AdminAPIKey string
	Timeout     time.Duration
}

// Client talks to the two logical backends (public and admin). Requests
// whose path contains /admin carry the bearer key and, when configured,
// go to the separate admin host. Every request is sent with no-cache
// headers so catalog and order reads are never stale.
type Client struct {
	cfg        Config
	httpClient *http.Client
	failures   *FailureCounter
	// searchLimiter throttles the high-volume read calls (catalog
	// search, delivery quotes) the UI tends to fire on every keystroke.
	searchLimiter *rate.Limiter
}

// NewClient creates a gateway client. failures may be nil.
func NewClient(cfg Config, failures *FailureCounter) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:           cfg,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		failures:      failures,
		searchLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// isAdminPath tells whether a request path targets the admin backend.
func isAdminPath(path string) bool {
	return strings.Contains(path, "/admin")
}

func (c *Client) baseURL(path string) string {
	if isAdminPath(path) && c.cfg.AdminAPIURL != "" {
		return strings.TrimRight(c.cfg.AdminAPIURL, "/")
	}
	return strings.TrimRight(c.cfg.APIURL, "/")
}

// do issues one request and decodes the JSON response into out (when
// out is non-nil). There is no retry: a failed call surfaces the error
// and stops.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL(path)+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Prevent stale catalog/order data anywhere between us and the API.
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	if isAdminPath(path) && c.cfg.AdminAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AdminAPIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.recordFailure()
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		var decoded struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr == nil {
			if decoded.Message != "" {
				apiErr.Message = decoded.Message
			} else if decoded.Error != "" {
				apiErr.Message = decoded.Error
			}
		}
		return apiErr
	}

	c.recordSuccess()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// doThrottled is do behind the search limiter; used for the read calls
// the UI can fire rapidly.
func (c *Client) doThrottled(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttled request to %s %s canceled: %w", method, path, err)
	}
	return c.do(ctx, method, path, body, out)
}

func (c *Client) recordFailure() {
	if c.failures != nil {
		c.failures.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.failures != nil {
		c.failures.RecordSuccess()
	}
}
