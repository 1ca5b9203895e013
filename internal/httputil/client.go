// Package httputil provides a hardened HTTP client with browser-like request
// identity, page fetching with charset decoding, and input sanitization.
package httputil

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultUserAgent mimics a desktop Chrome so Kwai serves the full page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultMaxPageBytes caps how much of a page is read into memory.
const DefaultMaxPageBytes = 10 * 1024 * 1024

// ErrPageTooLarge is returned when a page body exceeds the client's cap.
var ErrPageTooLarge = errors.New("page too large")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client bundles an http.Client with the request identity sent upstream.
type Client struct {
	HTTP         *http.Client
	UserAgent    string
	MaxPageBytes int64
}

// NewClient creates a hardened HTTP client with secure defaults.
// A zero timeout leaves the transport to bound requests via the caller's context.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  false,
				MaxIdleConnsPerHost: 5,
			},
		},
		UserAgent:    userAgent,
		MaxPageBytes: DefaultMaxPageBytes,
	}
}

// Get performs a GET request with standard browser-like headers.
// The caller owns the response body.
func (c *Client) Get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// FetchPage downloads an HTML page and returns its body decoded to UTF-8.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.Get(ctx, pageURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	limit := c.MaxPageBytes
	if limit <= 0 {
		limit = DefaultMaxPageBytes
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if int64(len(raw)) > limit {
		return "", fmt.Errorf("%w: over %d bytes", ErrPageTooLarge, limit)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding charset: %w", err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return string(body), nil
}

// OpenStream starts a GET for a binary asset. On success the caller must
// close the returned response body.
func (c *Client) OpenStream(ctx context.Context, assetURL string) (*http.Response, error) {
	resp, err := c.Get(ctx, assetURL, "video/mp4,video/*;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: assetURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
