// Package httpclient is the JSON client shared by the backend, routing and
// geocoding adapters. It owns the single retry policy of the tracker:
// idempotent requests are retried with exponential backoff on transport
// errors, 5xx and 429; every other failure is returned at once.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout       = 10 * time.Second
	retryInitialInterval = 100 * time.Millisecond
	maxErrorBody         = 512
)

// Config describes one remote service.
type Config struct {
	// Service names the remote in errors, logs and metrics.
	Service string
	BaseURL string
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxElapsed bounds all attempts of one call. Zero disables retries.
	MaxElapsed time.Duration
	UserAgent  string
}

// Request is one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// BearerToken, when set, is sent as the Authorization header.
	BearerToken string
	// Body is encoded as JSON when not nil.
	Body any
}

// Client sends JSON requests to a single service.
type Client struct {
	http       *http.Client
	service    string
	baseURL    *url.URL
	maxElapsed time.Duration
	userAgent  string
	logger     *slog.Logger
}

// New validates cfg and builds a client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Service) == "" {
		return nil, errs.NewValueIsRequiredError("service")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("base url", fmt.Errorf("%q is not an absolute URL", cfg.BaseURL))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxElapsed < 0 {
		cfg.MaxElapsed = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		service:    cfg.Service,
		baseURL:    base,
		maxElapsed: cfg.MaxElapsed,
		userAgent:  cfg.UserAgent,
		logger:     logger.With("component", "httpclient", "service", cfg.Service),
	}, nil
}

// Service returns the configured service name.
func (c *Client) Service() string {
	return c.service
}

// Do sends req and decodes a 2xx JSON body into out when out is not nil.
// Failures are *errs.UpstreamError values; the response status is kept so
// callers can react to 401 and 404.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	started := time.Now()
	err := c.do(ctx, req, out)
	metrics.ObserveUpstream(c.service, err, time.Since(started))
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		var err error
		if payload, err = json.Marshal(req.Body); err != nil {
			return fmt.Errorf("encode %s request: %w", c.service, err)
		}
	}

	attempt := func() error {
		err := c.send(ctx, req, payload, out)
		var upstream *errs.UpstreamError
		if errors.As(err, &upstream) && upstream.IsTransient() && ctx.Err() == nil {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	if !c.retryable(req.Method) {
		return unwrapPermanent(attempt())
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxElapsedTime = c.maxElapsed

	return backoff.RetryNotify(attempt, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		c.logger.DebugContext(ctx, "retrying request",
			"method", req.Method,
			"path", req.Path,
			"wait", wait,
			"error", err,
		)
	})
}

func (c *Client) retryable(method string) bool {
	if c.maxElapsed == 0 {
		return false
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (c *Client) send(ctx context.Context, req Request, payload []byte, out any) error {
	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.service, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errs.NewUpstreamErrorWithCause(c.service, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			return errs.NewUpstreamErrorWithCause(c.service, resp.StatusCode, errors.New(msg))
		}
		return errs.NewUpstreamError(c.service, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// An empty 2xx body leaves out untouched.
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewUpstreamErrorWithCause(c.service, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var upstream *errs.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return 0
}

func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}
