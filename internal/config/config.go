package config

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/portal"
	"github.com/CCZU-OSSA/cczukit/internal/sso"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "cczukit"

	// DefaultTimeout bounds each HTTP request, including the body read.
	DefaultTimeout = transport.DefaultTimeout

	// DefaultMaxBodySize is the largest response body read, in bytes.
	DefaultMaxBodySize = transport.DefaultMaxBodySize

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "Mozilla/5.0 (compatible; cczukit/1.0; +https://github.com/CCZU-OSSA/cczukit)"
)

// Environment variables that override the account in the config file.
const (
	EnvUsername = "CCZU_USERNAME"
	EnvPassword = "CCZU_PASSWORD"
)

// Endpoints are the upstream roots cczukit talks to.
type Endpoints struct {
	// SSOURL is the SSO login root.
	SSOURL string

	// VPNURL is the WebVPN gateway root, sent as Referer after a tunnel login.
	VPNURL string

	// AppBaseURL is the root of the academic application API.
	AppBaseURL string
}

// Config holds all configuration options for cczukit.
type Config struct {
	// Username is the student number used to log in.
	Username string

	// Password is the portal password.
	Password string

	// Endpoints are the upstream service roots.
	Endpoints Endpoints

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Headers are extra headers sent with every request.
	Headers map[string]string

	// MaxBodySize is the maximum response body size in bytes. Zero uses the default.
	MaxBodySize int64

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string

	// CacheDir holds the SQLite cache database.
	CacheDir string

	// NoCache disables the disk cache.
	NoCache bool

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// ConfigFilePath is the explicit config file given with --config.
	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Endpoints: Endpoints{
			SSOURL:     sso.DefaultSSOURL,
			VPNURL:     sso.DefaultVPNURL,
			AppBaseURL: portal.DefaultBaseURL,
		},
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		CacheDir:    XDGCacheDir(),
	}
}

// XDGConfigDir returns the XDG config directory for cczukit.
// On Linux: ~/.config/cczukit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for cczukit.
// On Linux: ~/.cache/cczukit
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// ApplyEnv overrides the account with CCZU_USERNAME and CCZU_PASSWORD when
// they are set. lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvUsername); ok && v != "" {
		c.Username = v
	}
	if v, ok := lookup(EnvPassword); ok && v != "" {
		c.Password = v
	}
}

// Credential returns the configured account.
func (c *Config) Credential() model.Credential {
	return model.NewCredential(c.Username, c.Password)
}

// HTTPHeaders returns the default request headers: the User-Agent plus
// any configured extra headers.
func (c *Config) HTTPHeaders() http.Header {
	h := http.Header{}
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		h.Set(k, v)
	}
	return h
}

// Validate checks every setting except the credentials.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	for _, ep := range []struct{ name, raw string }{
		{"sso", c.Endpoints.SSOURL},
		{"vpn", c.Endpoints.VPNURL},
		{"app", c.Endpoints.AppBaseURL},
	} {
		if !isHTTPURL(ep.raw) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEndpoint, ep.name, ep.raw)
		}
	}
	if c.Proxy != "" {
		if host, port, err := net.SplitHostPort(c.Proxy); err != nil || host == "" || port == "" {
			return ErrInvalidProxy
		}
	}
	return nil
}

// ValidateWithCredentials runs Validate and also requires an account.
func (c *Config) ValidateWithCredentials() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Credential().IsZero() {
		return ErrMissingCredentials
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
