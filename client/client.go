// Package client is a thin client for the DataCite Metadata Store (MDS) API.
//
// All operations take a context, authenticate with HTTP Basic, and return
// MDS failures as typed errors from package apierr.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dcite/mds/apierr"
)

const (
	defaultBaseURL    = "https://mds.datacite.org/"
	defaultUserAgent  = "mds-go/0.1"
	defaultMaxRetries = 2
)

type Client struct {
	BaseURL   string
	Username  string
	UserAgent string

	password   string
	httpClient *http.Client
	testMode   bool
	maxRetries int
	log        *slog.Logger
}

type Option func(*Client) error

// WithBaseURL points the client at a different MDS instance (e.g. the test
// prefix sandbox). Trailing slash is enforced.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base URL %q", base)
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		c.BaseURL = base
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.httpClient = hc
		return nil
	}
}

func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("non-positive timeout %v", d)
		}
		c.httpClient.Timeout = d
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return fmt.Errorf("empty user agent")
		}
		c.UserAgent = ua
		return nil
	}
}

// WithTestMode appends testMode=true to every request, so MDS validates but
// does not register.
func WithTestMode(on bool) Option {
	return func(c *Client) error {
		c.testMode = on
		return nil
	}
}

// WithMaxRetries caps how many times a retryable failure is re-attempted
// (0 disables retries).
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("negative retry count %d", n)
		}
		c.maxRetries = n
		return nil
	}
}

// WithLogger sets the logger handed to apierr.Classify for debug diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) error {
		if log == nil {
			return fmt.Errorf("nil logger")
		}
		c.log = log
		return nil
	}
}

func NewClient(username, password string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	c := &Client{
		BaseURL:    defaultBaseURL,
		Username:   username,
		UserAgent:  defaultUserAgent,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// do sends one request and returns the trimmed body. Any status outside want
// is classified into an *apierr.Error; failures before a response arrives
// become *apierr.TransportError. 204 is an error here unless asked for: MDS
// uses it for "DOI known but unresolvable".
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, want ...int) (string, error) {
	target := c.BaseURL + path
	if c.testMode {
		target += "?testMode=true"
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.password)
	req.Header.Set("User-Agent", c.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &apierr.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	slurp, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apierr.TransportError{Op: method + " " + path, Err: err}
	}
	data := strings.TrimSpace(string(slurp))

	for _, w := range want {
		if resp.StatusCode == w {
			return data, nil
		}
	}
	return "", apierr.Classify(apierr.Response{
		Code: strconv.Itoa(resp.StatusCode),
		Data: data,
		Context: map[string]any{
			"method":   method,
			"path":     path,
			"username": c.Username,
			"password": c.password,
		},
	}, c.log)
}

// doWithRetry wraps do with a capped retry loop. Only failures apierr deems
// retryable are re-attempted; backoff doubles with jitter and honors ctx.
func (c *Client) doWithRetry(ctx context.Context, method, path, contentType string, body []byte, want ...int) (string, error) {
	backoff := 300 * time.Millisecond
	for attempt := 0; ; attempt++ {
		out, err := c.do(ctx, method, path, contentType, body, want...)
		if err == nil {
			return out, nil
		}
		if attempt >= c.maxRetries || !apierr.IsRetryable(err) {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(apierr.JitteredBackoff(backoff)):
		}
		backoff *= 2
	}
}
