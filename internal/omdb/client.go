package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Searcher defines the OMDb operations used by the data sources.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query string) (SearchResult, error)
	Lookup(ctx context.Context, id string) (DetailResult, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const defaultUserAgent = "popcorn/0.1"

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The default has no
// timeout; requests end when the transport fails or the context is done.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for baseURL authenticating with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		apiKey:    apiKey,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search looks up titles matching query. Transport problems are reported as
// SearchFailure together with the underlying error; a cancelled context
// yields an error matching context.Canceled.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	if c == nil {
		return SearchResult{Kind: SearchFailure}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("s", query)

	var payload searchPayload
	if err := c.get(ctx, values, &payload); err != nil {
		return SearchResult{Kind: SearchFailure}, err
	}
	if isFalse(payload.Response) || len(payload.Search) == 0 {
		return SearchResult{Kind: SearchNotFound, Message: strings.TrimSpace(payload.Error)}, nil
	}
	total, _ := strconv.Atoi(strings.TrimSpace(payload.TotalResults))
	return SearchResult{Kind: SearchSuccess, Movies: payload.Search, Total: total}, nil
}

// Lookup fetches the details of a single title by IMDb identifier.
func (c *Client) Lookup(ctx context.Context, id string) (DetailResult, error) {
	if c == nil {
		return DetailResult{Kind: DetailFailure}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return DetailResult{Kind: DetailFailure}, fmt.Errorf("imdb id required")
	}
	values := url.Values{}
	values.Set("i", id)
	values.Set("plot", "short")

	var payload detailPayload
	if err := c.get(ctx, values, &payload); err != nil {
		return DetailResult{Kind: DetailFailure}, err
	}
	if isFalse(payload.Response) {
		return DetailResult{Kind: DetailNotFound, Message: strings.TrimSpace(payload.Error)}, nil
	}
	return DetailResult{Kind: DetailFound, Movie: payload.MovieDetail}, nil
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	values.Set("apikey", c.apiKey)
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("omdb base url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
