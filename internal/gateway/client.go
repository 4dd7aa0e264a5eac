package gateway

// Package gateway issues HTTP calls to the PFETrack backend. Authenticated
// calls carry the stored session token as a bearer credential; public calls
// never do. The gateway reads the credential store but never writes it.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	obserrors "github.com/3issane/PFETRACKCODE212/internal/observability/errors"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

const (
	// DefaultBaseURL is the backend root used when none is configured.
	DefaultBaseURL = "http://localhost:8080/api"
	defaultTimeout = 30 * time.Second

	headerRequestID = "X-Request-Id"
)

// TokenFunc adapts a function to ports.TokenReader.
type TokenFunc func(ctx context.Context) (string, error)

// ReadToken calls f.
func (f TokenFunc) ReadToken(ctx context.Context) (string, error) { return f(ctx) }

// Options configures a Client.
type Options struct {
	BaseURL string
	// Tokens is the read-only view of the credential store. Nil means every request is anonymous.
	Tokens     ports.TokenReader
	HTTPClient *http.Client
	Timeout    time.Duration
	// RateLimit is the client-side request rate per second; zero disables limiting.
	RateLimit float64
	RateBurst int
	Logger    *slog.Logger
	Observer  ports.ResponseObserver
}

// RequestOptions describes a single call.
type RequestOptions struct {
	Method string
	Query  url.Values
	// Body is JSON-encoded when RawBody is nil.
	Body        any
	RawBody     io.Reader
	ContentType string
	Header      http.Header
}

// Client is the API gateway.
type Client struct {
	baseURL *url.URL
	tokens  ports.TokenReader
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger

	mu       sync.RWMutex
	observer ports.ResponseObserver
}

// New builds a gateway client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("create cookie jar: %w", jarErr)
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  base,
		tokens:   opts.Tokens,
		http:     hc,
		limiter:  limiter,
		logger:   logger.With("component", "gateway"),
		observer: opts.Observer,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// SetObserver registers the observer told about authenticated responses.
// The session manager is built after the gateway, so it registers here.
func (c *Client) SetObserver(obs ports.ResponseObserver) {
	c.mu.Lock()
	c.observer = obs
	c.mu.Unlock()
}

// Request performs an authenticated call, attaching the stored token when one exists.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	return c.do(ctx, path, opts, true)
}

// PublicRequest performs a call that never carries a token.
func (c *Client) PublicRequest(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	return c.do(ctx, path, opts, false)
}

func (c *Client) do(ctx context.Context, path string, opts RequestOptions, withToken bool) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}
	path = "/" + strings.TrimLeft(path, "/")

	req, err := c.newRequest(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}

	var sentToken string
	if withToken {
		sentToken = c.attachToken(ctx, req)
	}
	attached := sentToken != ""

	if c.limiter != nil {
		if waitErr := c.limiter.Wait(ctx); waitErr != nil {
			return nil, fmt.Errorf("rate limit %s %s: %w", method, path, waitErr)
		}
	}

	requestID := req.Header.Get(headerRequestID)
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			"method", method,
			"path", path,
			"authenticated", attached,
			"request_id", requestID,
			"duration", duration,
			"error_class", obserrors.Classify(err),
		)
		return nil, fmt.Errorf("api %s %s: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"authenticated", attached,
		"request_id", requestID,
		"duration", duration,
	)

	if withToken {
		c.notify(resp.StatusCode, sentToken)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer closeBody(resp)
		return nil, newHTTPError(resp, method, path)
	}

	return readResponse(resp)
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts RequestOptions) (*http.Request, error) {
	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	target.RawPath = ""
	if len(opts.Query) > 0 {
		target.RawQuery = opts.Query.Encode()
	}

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get(headerRequestID) == "" {
		req.Header.Set(headerRequestID, uuid.NewString())
	}
	// Callers cannot smuggle credentials through Header.
	req.Header.Del("Authorization")
	return req, nil
}

func encodeBody(opts RequestOptions) (io.Reader, string, error) {
	if opts.RawBody != nil {
		ct := opts.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return opts.RawBody, ct, nil
	}
	if opts.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(opts.Body)
	if err != nil {
		return nil, "", err
	}
	ct := opts.ContentType
	if ct == "" {
		ct = "application/json"
	}
	return bytes.NewReader(data), ct, nil
}

// attachToken sets the bearer header and returns the token it attached.
// A store read failure degrades to an anonymous request.
func (c *Client) attachToken(ctx context.Context, req *http.Request) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.ReadToken(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "read session token failed; sending without credentials",
			"error_class", obserrors.Classify(err),
		)
		return ""
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return token
}

func (c *Client) notify(status int, token string) {
	c.mu.RLock()
	obs := c.observer
	c.mu.RUnlock()
	if obs != nil {
		obs.ObserveResponse(status, token)
	}
}

func readResponse(resp *http.Response) (*Response, error) {
	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if !isJSON(resp.Header.Get("Content-Type")) {
		out.Raw = resp
		return out, nil
	}
	defer closeBody(resp)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		out.Data = json.RawMessage(data)
	}
	return out, nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
