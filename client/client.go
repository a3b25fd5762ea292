// Package client is the API client for the fintrack backend. Read results
// are cached under composite query keys (entity tag plus the id or filter
// parameters used); concurrent identical reads are deduplicated; successful
// mutations invalidate the query keys whose results they may have changed,
// triggering a refetch on the next read. Failed mutations invalidate nothing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// APIError is a decoded error response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Client is a fintrack API client with a shared query cache.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client

	cache *queryCache
	group singleflight.Group

	mu       sync.Mutex
	versions map[string]uint64
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpc     *http.Client
	cacheSize int
	cacheTTL  time.Duration
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *options) { o.httpc = httpc }
}

// WithCacheSize sets the maximum number of cached query results.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithCacheTTL sets how long a cached result is served before a refetch.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// New creates a Client for the given base URL (including the API prefix,
// e.g. "http://localhost:8080/api/v1") and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	o := options{
		httpc:     http.DefaultClient,
		cacheSize: defaultCacheSize,
		cacheTTL:  defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		httpc:    o.httpc,
		cache:    newQueryCache(o.cacheSize, o.cacheTTL),
		versions: make(map[string]uint64),
	}
}

// version returns the current invalidation version for an entity tag.
func (c *Client) version(tag string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[tag]
}

// invalidate drops all cached queries for the given entity tags and bumps
// their versions so in-flight reads of those entities do not repopulate the
// cache with pre-mutation data.
func (c *Client) invalidate(tags ...string) {
	c.mu.Lock()
	for _, tag := range tags {
		c.versions[tag]++
	}
	c.mu.Unlock()

	for _, tag := range tags {
		c.cache.DeletePrefix(tag)
	}
}

// dataEnvelope is the single-key wrapper all entity endpoints respond with.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// do performs one HTTP round-trip and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError turns an error response into an *APIError, falling back to
// the HTTP status when the body is not the expected shape.
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "UNEXPECTED_RESPONSE",
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       body.Error.Code,
		Message:    body.Error.Message,
	}
}

// cachedFetch serves a read from the cache, deduplicating concurrent fetches
// of the same key. A completed fetch only populates the cache if no
// invalidation of its entity landed while it was in flight and its context
// is still live; the result itself is always returned to the caller.
func cachedFetch[T any](ctx context.Context, c *Client, key string, fetch func() (T, error)) (T, error) {
	if cached, ok := c.cache.Get(key); ok {
		return cached.(T), nil
	}

	tag := keyTag(key)
	before := c.version(tag)

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		var zero T
		return zero, err
	}

	value := result.(T)
	if ctx.Err() == nil && c.version(tag) == before {
		c.cache.Set(key, value)
	}
	return value, nil
}
