// Package httpclient holds the outbound HTTP client shared by the provider adapters.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/heartmarshall/teamdex/internal/provider"
)

// maxBodySize caps how much of a response body is read (the pokedex dataset is ~1 MB).
const maxBodySize = 16 << 20

// Options configures New.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// Client performs bounded GET requests and decodes JSON bodies.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client. Each request is bounded by opts.Timeout and follows
// at most opts.MaxRedirects redirects; one more hop fails with provider.ErrTooManyRedirects.
func New(opts Options) *Client {
	maxRedirects := opts.MaxRedirects
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("%w: limit is %d", provider.ErrTooManyRedirects, maxRedirects)
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
	}
}

// GetJSON issues a GET to url and decodes the 2xx response body into dst.
// Any other final status is returned as *provider.StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, dst any) error {
	body, err := c.Get(ctx, url, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Get issues a GET to url with optional extra headers and returns the 2xx response body.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &provider.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
