// Package catalog fetches listings from the property API.
package catalog

import (
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

	"inmomax/internal/filters"
	"inmomax/internal/model"
)

// ErrFetch matches every error returned by Client.
var ErrFetch = errors.New("property fetch failed")

// FetchError describes a failed call to the property API: a transport error,
// a non-2xx status or a malformed body.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrFetch so callers need not know the concrete type.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Client talks to the property API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// List fetches one page of listings matching f. Only active filter fields
// are sent.
func (c *Client) List(ctx context.Context, f filters.FilterSet, page, limit int) (*model.PropertyListResponse, error) {
	q := filters.Encode(f)
	if page > 0 {
		q.Set("pagina", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limite", strconv.Itoa(limit))
	}

	var out model.PropertyListResponse
	if err := c.getJSON(ctx, "list", "/api/propiedades", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Featured fetches up to limit featured listings for the home page.
func (c *Client) Featured(ctx context.Context, limit int) ([]model.Property, error) {
	q := url.Values{}
	q.Set("featured", "true")
	q.Set("limit", strconv.Itoa(limit))

	var out model.PropertyListResponse
	if err := c.getJSON(ctx, "featured", "/api/propiedades", q, &out); err != nil {
		return nil, err
	}
	return out.Properties, nil
}

// Get fetches a single listing.
func (c *Client) Get(ctx context.Context, id int64) (*model.Property, error) {
	var out model.Property
	path := "/api/propiedades/" + strconv.FormatInt(id, 10)
	if err := c.getJSON(ctx, "get", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(body, 200))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
