package yelp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/yelpmcp/config"
	"github.com/effective-security/yelpmcp/pkg/metricskey"
)

//go:generate mockgen -source=client.go -destination=../../mocks/mockyelp/client_mock.gen.go -package mockyelp

var logger = xlog.NewPackageLogger("github.com/effective-security/yelpmcp/tools", "yelp")

// Doer sends HTTP requests, *http.Client implements it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends requests to the Yelp API with the bearer token
// from the configuration.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient Doer
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used to send requests
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithBaseURL overrides the base URL from the configuration
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient returns a client for the configuration
func NewClient(cfg *config.Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("configuration is not provided")
	}
	if cfg.APIKey == "" {
		return nil, errors.Errorf("%s is not set", config.EnvAPIKey)
	}
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL of the Yelp API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request and returns the response body as received,
// non-2xx responses are not errors.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request: %s", r.Route)
	}
	hreq.Header.Set("accept", "application/json")
	hreq.Header.Set("authorization", "Bearer "+c.apiKey)
	if r.Body != nil {
		hreq.Header.Set("content-type", "application/json")
	}
	if c.userAgent != "" {
		hreq.Header.Set("user-agent", c.userAgent)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"method", r.Method,
		"route", r.Route,
		"path", r.Path,
		"query", r.Query.Encode(),
	)

	started := time.Now()
	resp, err := c.httpClient.Do(hreq)
	metricskey.PerfUpstreamCall.MeasureSince(started, r.Method, r.Route)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"route", r.Route,
			"err", err.Error(),
		)
		return nil, errors.Mark(errors.Wrapf(err, "failed to call %s", r.Route), ErrTransport)
	}
	defer resp.Body.Close()

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to read response: %s", r.Route), ErrTransport)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"route", r.Route,
		"status", resp.StatusCode,
		"bytes", len(bs),
		"elapsed", time.Since(started).String(),
	)

	if !json.Valid(bs) {
		return nil, errors.Mark(
			errors.Errorf("failed to decode response: %s: status %d", r.Route, resp.StatusCode),
			ErrDecode)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bs,
	}, nil
}
