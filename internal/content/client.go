package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Client defaults. Audited pages are ordinary articles; anything beyond the
// body cap is almost certainly not the page text.
const (
	// defaultTimeout bounds the whole request.
	defaultTimeout = 30 * time.Second

	// defaultUserAgent identifies the auditor to the audited site.
	defaultUserAgent = "contentaudit/1.0 (+https://github.com/contentaudit/contentaudit)"

	// defaultMaxBodySize limits response bodies to 5MB.
	defaultMaxBodySize = 5 * 1024 * 1024
)

// Client fetches pages for auditing. One Fetch call performs exactly one
// HTTP GET; redirects are followed by the underlying http.Client and the
// final URL is recorded on the result.
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// timeout bounds requests of the built-in client.
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. one with a proxy. A custom
// client keeps its own timeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the request timeout of the built-in client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// NewClient creates a Client with sane defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		timeout:     defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// Fetch retrieves and parses the page at pageURL. The returned content is
// the single snapshot all audit phases evaluate against.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*model.FetchedContent, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url %q: %w", pageURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8,nl;q=0.6,de;q=0.6,fr;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %d fetching %s", ErrUnexpectedStatus, resp.StatusCode, pageURL)
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" && !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, contentType)
	}

	// Pages still arrive in legacy encodings; decode to UTF-8 before parsing
	// so term extraction and readability see real characters.
	decoded, err := charset.NewReader(
		io.LimitReader(resp.Body, c.maxBodySize),
		resp.Header.Get("Content-Type"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Redirects may have moved us; audit the page we actually landed on.
	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	content, err := Parse(string(body), finalURL)
	if err != nil {
		return nil, err
	}

	content.FetchedVia = "http"
	content.FetchedAt = start
	content.FetchDuration = time.Since(start)
	return content, nil
}
