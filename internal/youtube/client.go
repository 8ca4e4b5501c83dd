package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Client talks to the public YouTube endpoints: oEmbed for metadata and the
// watch page plus timedtext for captions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	languages  []string
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at another host (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguages sets the preferred caption languages, most preferred first
func WithLanguages(langs ...string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// NewClient creates a new YouTube client
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   defaultBaseURL,
		languages: []string{"en"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET and returns the body of a 200 response, reading at most limit bytes
func (c *Client) get(ctx context.Context, url, accept string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, snippet)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
