package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/logging"
)

// Upstream defaults.
const (
	DefaultBaseURL = "http://data.sfgov.org/resource/bbb8-hzi6.json"
	DefaultLimit   = 1000
)

// appTokenHeader is Socrata's throttling key header.
const appTokenHeader = "X-App-Token"

// HTTPDoer is the subset of *http.Client the client needs.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithLimit sets the $limit sent with every request.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithAppToken sends the token in the X-App-Token header.
func WithAppToken(token string) Option {
	return func(c *Client) {
		c.appToken = strings.TrimSpace(token)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client fetches truck records from one dataset endpoint.
type Client struct {
	baseURL   string
	limit     int
	appToken  string
	userAgent string
	doer      HTTPDoer
}

// NewClient creates a client for baseURL. The URL must be absolute http(s).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		limit:   DefaultLimit,
		doer:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Limit returns the $limit used per request.
func (c *Client) Limit() int {
	return c.limit
}

// BuildURL appends $limit and $offset to baseURL. The dollar signs are kept
// literal, which Socrata accepts and url.Values.Encode would escape.
func BuildURL(baseURL string, limit, offset int) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "$limit=" + strconv.Itoa(limit) + "&$offset=" + strconv.Itoa(offset)
}

// Fetch issues one GET for the window starting at offset and decodes the
// JSON array body. Fewer than Limit() records means the dataset is exhausted.
func (c *Client) Fetch(ctx context.Context, offset int) ([]foodtruck.Truck, error) {
	log := logging.FromContext(ctx)
	target := BuildURL(c.baseURL, c.limit, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.appToken != "" {
		req.Header.Set(appTokenHeader, c.appToken)
	}

	log.Debug().Ctx(ctx).
		Str("component", "socrata").
		Str("operation", "fetch").
		Str("url", target).
		Int("offset", offset).
		Int("limit", c.limit).
		Msg("fetching records")

	resp, err := c.doer.Do(req)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "socrata").
			Str("operation", "fetch").
			Str("url", target).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error().Ctx(ctx).
			Str("component", "socrata").
			Str("operation", "fetch").
			Str("url", target).
			Int("status", resp.StatusCode).
			Msg("unexpected status")
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	trucks, err := decodeTrucks(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Ctx(ctx).
		Str("component", "socrata").
		Str("operation", "fetch").
		Int("status", resp.StatusCode).
		Int("offset", offset).
		Int("records", len(trucks)).
		Msg("fetched records")

	return trucks, nil
}

func decodeTrucks(body io.Reader) ([]foodtruck.Truck, error) {
	var trucks []foodtruck.Truck
	if err := json.NewDecoder(body).Decode(&trucks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return trucks, nil
}
