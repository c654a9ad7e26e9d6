package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	nav     Navigator
	session SessionClearer
	limiter *rate.Limiter
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithTokenSource(t TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = t }
}

// WithUnauthorizedHandler sets who is cleared and redirected on a 401.
func WithUnauthorizedHandler(nav Navigator, session SessionClearer) Option {
	return func(c *HTTPClient) {
		c.nav = nav
		c.session = session
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Do(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqID := uuid.NewString()
	ctx = logging.ContextWith(ctx, "request_id", reqID)

	httpReq, err := c.newRequest(ctx, req, reqID)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.mapError(ctx, resp.StatusCode, body)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, req Request, reqID string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Body != nil {
		var err error
		body, contentType, err = req.Body.Encode()
		if err != nil {
			return nil, err
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeader, reqID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set(common.AuthorizationHeader, "Bearer "+token)
		}
	}
	return httpReq, nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, urlErr.Err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) mapError(ctx context.Context, status int, body []byte) error {
	if status == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
	}
	return newAPIError(status, body)
}

// handleUnauthorized drops the session and sends the navigator to the login
// page unless it is already there.
func (c *HTTPClient) handleUnauthorized(ctx context.Context) {
	if c.nav == nil {
		return
	}
	if strings.Contains(c.nav.Location(), common.LoginPath) {
		return
	}
	if c.session != nil {
		if err := c.session.Clear(ctx); err != nil {
			c.log.Warn(ctx, "clear session after 401", "error", err)
		}
	}
	c.nav.Redirect(common.LoginPath)
}
