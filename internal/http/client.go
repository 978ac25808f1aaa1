package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies grabs to the library's servers.
const DefaultUserAgent = "grabs"

// Client wraps HTTP operations against the digital library.
//
// Client provides:
//   - A pinned User-Agent header
//   - Timeout handling
//   - Context-aware GET requests for pages, manifests and tiles
//
// Its Get method satisfies untile.FetchFunc, so the same client serves both
// metadata scraping and tile fetching:
//
//	client := NewClient("")
//	html, err := client.GetString(ctx, viewerURL)
//	res, err := reconstructor.Build(ctx, img, zoom, client.Get)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client. An empty userAgent selects
// DefaultUserAgent.
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if the request fails, the response status is not 200 OK,
// or reading the body fails.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a
// string. Convenience wrapper around Get for HTML and JSON endpoints.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
