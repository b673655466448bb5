package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/net/publicsuffix"
)

// Defaults for a Client created without options.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the response body, truncated to the client's max body size.
	Body []byte

	// URL is the URL that produced this response.
	URL *url.URL
}

// Location returns the raw Location header.
func (r *Response) Location() string {
	return r.Header.Get("Location")
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Doer is the request surface shared by the sso and portal packages.
// *Client implements it.
type Doer interface {
	Get(ctx context.Context, rawURL string, header http.Header) (*Response, error)
	PostForm(ctx context.Context, rawURL string, header http.Header, form url.Values) (*Response, error)
	PostJSON(ctx context.Context, rawURL string, header http.Header, v any) (*Response, error)
	Cookie(rawURL, name string) (*http.Cookie, bool)
}

var _ Doer = (*Client)(nil)

// Client performs portal requests with a shared cookie jar.
type Client struct {
	httpClient     *http.Client
	jar            http.CookieJar
	defaultHeaders http.Header
	maxBodySize    int64
	timeout        time.Duration
	proxyAddress   string
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxBodySize limits how many bytes of each body are read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithProxy routes all connections through a SOCKS5 proxy at "host:port".
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithDefaultHeaders sets headers added to every request that does not
// already carry them. The header is cloned, so later changes by the caller
// have no effect.
func WithDefaultHeaders(h http.Header) Option {
	return func(c *Client) {
		c.defaultHeaders = h.Clone()
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. It fails only when the proxy address is invalid.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		maxBodySize:    DefaultMaxBodySize,
		timeout:        DefaultTimeout,
		defaultHeaders: http.Header{},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		base.Proxy = nil
		base.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c.jar = jar

	c.httpClient = &http.Client{
		Transport: &headerInjectingTransport{
			base:    base,
			headers: c.defaultHeaders,
		},
		Timeout: c.timeout,
		Jar:     jar,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return c, nil
}

// isValidProxyAddress checks for a non-empty host and a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, header, nil, "")
}

// PostForm performs a POST with an application/x-www-form-urlencoded body.
func (c *Client) PostForm(ctx context.Context, rawURL string, header http.Header, form url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, header,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// PostJSON performs a POST with v encoded as the JSON body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, header http.Header, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, header, bytes.NewReader(body), "application/json")
}

// Cookie returns the named cookie the jar would send to rawURL.
func (c *Client) Cookie(rawURL, name string) (*http.Cookie, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == name {
			return ck, true
		}
	}
	return nil, false
}

// Cookies returns every cookie the jar would send to u.
func (c *Client) Cookies(u *url.URL) []*http.Cookie {
	return c.jar.Cookies(u)
}

func (c *Client) do(ctx context.Context, method, rawURL string, header http.Header, body io.Reader, contentType string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Redacted(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("http request",
		"method", method,
		"url", u.Redacted(),
		"status", resp.StatusCode,
		"bytes", len(data),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		URL:        u,
	}, nil
}

// headerInjectingTransport adds default headers to requests that do not set
// them already.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers http.Header
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	for key, values := range t.headers {
		if clone.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			clone.Header.Add(key, v)
		}
	}
	return t.base.RoundTrip(clone)
}
