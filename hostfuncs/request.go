package hostfuncs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

// HostResponse is the structured value the request capability hands back to
// script code. Constructing one never fails: transport faults are mapped
// into a degraded instance (status 500) rather than propagated.
type HostResponse struct {
	// StatusCode is the HTTP status, or 500 for any transport failure.
	StatusCode int `json:"statusCode"`

	// Body is the raw response text, possibly empty.
	Body string `json:"body"`

	// ContentType mirrors the Content-Type header, empty if absent.
	ContentType string `json:"contentType"`

	// Headers maps header name to value. Duplicate names collapse to the
	// last value seen.
	Headers map[string]string `json:"headers"`
}

// RequestOption is a functional option for configuring request behavior.
type RequestOption func(*requestConfig)

type requestConfig struct {
	timeout         time.Duration
	maxBodySize     int64
	userAgent       string
	followRedirects bool
}

func defaultRequestConfig() requestConfig {
	return requestConfig{
		timeout:         30 * time.Second,
		maxBodySize:     10 * 1024 * 1024, // 10MB
		followRedirects: true,
	}
}

// WithRequestTimeout bounds each outbound request.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(c *requestConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxBodySize caps the response body read per request.
func WithMaxBodySize(size int64) RequestOption {
	return func(c *requestConfig) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) RequestOption {
	return func(c *requestConfig) {
		c.userAgent = ua
	}
}

// WithFollowRedirects controls whether redirects are followed.
func WithFollowRedirects(follow bool) RequestOption {
	return func(c *requestConfig) {
		c.followRedirects = follow
	}
}

// PerformRequest performs one blocking outbound request on behalf of script
// code.
//
// Only GET and POST are brokered; any other method returns
// *errors.UnsupportedMethodError and the zero response - callers must treat
// that as fatal, never as a degraded response. All transport faults (DNS,
// connect, timeout, body read) degrade into a valid HostResponse with status
// 500 and a nil error, preserving the invariant that the script observes a
// normal response object, never an exception.
func PerformRequest(ctx context.Context, url, method string, opts ...RequestOption) (HostResponse, error) {
	cfg := defaultRequestConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return HostResponse{}, &cerrors.UnsupportedMethodError{Method: method}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return degradedResponse(), nil
	}
	if cfg.userAgent != "" {
		req.Header.Set("User-Agent", cfg.userAgent)
	}

	resp, err := newClient(cfg).Do(req)
	if err != nil {
		return degradedResponse(), nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.maxBodySize))
	if err != nil {
		return degradedResponse(), nil
	}

	return HostResponse{
		StatusCode:  resp.StatusCode,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		Headers:     collapseHeaders(resp.Header),
	}, nil
}

func newClient(cfg requestConfig) *http.Client {
	client := &http.Client{Timeout: cfg.timeout}
	if !cfg.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

// collapseHeaders flattens multi-valued headers, last value wins.
func collapseHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		headers[name] = values[len(values)-1]
	}
	return headers
}

func degradedResponse() HostResponse {
	return HostResponse{
		StatusCode:  500,
		Body:        "Internal Server Error",
		ContentType: "",
		Headers:     map[string]string{},
	}
}
