package fhirhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

const (
	// HeaderRequestID correlates a request with server-side logs.
	HeaderRequestID = "X-Request-ID"

	// AcceptFHIR asks for FHIR JSON responses, matching _format=json.
	AcceptFHIR = "application/fhir+json"

	// DefaultUserAgent identifies the loader to servers.
	DefaultUserAgent = "fhir-loader"
)

// Ensure Client implements the interface.
var _ driven.ResourceClient = (*Client)(nil)

// Client sends the HEAD, GET and PUT requests of a run.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	userAgent string
	newID     func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is never
// modified; a timeout set with WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the http.Client's own.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit allows at most perSecond requests per second.
// Zero or negative disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client. Options are applied in order.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		userAgent: DefaultUserAgent,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Probe issues a HEAD request.
func (c *Client) Probe(ctx context.Context, url string) (*driven.Response, error) {
	return c.do(ctx, http.MethodHead, url, "", nil)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string) (*driven.Response, error) {
	return c.do(ctx, http.MethodGet, url, "", nil)
}

// Send uploads body with the target's method and content type.
func (c *Client) Send(ctx context.Context, target domain.TargetRequest, body []byte) (*driven.Response, error) {
	return c.do(ctx, string(target.Method), target.URL, target.ContentType, body)
}

func (c *Client) do(ctx context.Context, method, url, contentType string, body []byte) (*driven.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set(HeaderRequestID, c.newID())
	req.Header.Set("User-Agent", c.userAgent)
	if method != http.MethodHead && method != http.MethodGet {
		req.Header.Set("Accept", AcceptFHIR)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}

	return &driven.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       data,
	}, nil
}
