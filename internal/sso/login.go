package sso

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

// Default endpoints of the campus SSO.
const (
	DefaultSSOURL = "http://sso.cczu.edu.cn/sso/login"
	DefaultVPNURL = "https://zmvpn.cczu.edu.cn"
)

// TopologyPropertyKey is the property store key holding the resolved topology.
const TopologyPropertyKey = "SSOLoginConnectType"

// clientInfoCookie is set by the WebVPN gateway after a successful login.
const clientInfoCookie = "clientInfo"

// failureMarkers are the messages the login page shows on a rejected account.
var failureMarkers = []string{
	"用户名不存在",
	"密码错误",
	"用户名或密码错误",
}

// PropertyStore records small key/value facts about the login.
type PropertyStore interface {
	SetProperty(ctx context.Context, key, value string) error
}

// Result is the outcome of a successful SSO login.
type Result struct {
	Topology model.LoginTopology

	// Descriptor is decoded from the clientInfo cookie. It is nil for the
	// direct topology, which never sets that cookie.
	Descriptor *model.SessionDescriptor
}

// Authenticator performs the SSO login.
type Authenticator struct {
	client     HTTPClient
	chaser     *RedirectChaser
	properties PropertyStore
	ssoURL     string
	vpnURL     string
	logger     *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithSSOURL overrides the SSO root URL.
func WithSSOURL(u string) Option {
	return func(a *Authenticator) {
		a.ssoURL = u
	}
}

// WithVPNURL overrides the WebVPN root URL sent as Referer after login.
func WithVPNURL(u string) Option {
	return func(a *Authenticator) {
		a.vpnURL = u
	}
}

// WithPropertyStore sets where the resolved topology is recorded.
func WithPropertyStore(store PropertyStore) Option {
	return func(a *Authenticator) {
		a.properties = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// NewAuthenticator creates an Authenticator using client for every request.
func NewAuthenticator(client HTTPClient, opts ...Option) *Authenticator {
	a := &Authenticator{
		client: client,
		chaser: NewRedirectChaser(client),
		ssoURL: DefaultSSOURL,
		vpnURL: DefaultVPNURL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate logs in through whichever topology the SSO root selects.
// It returns model.ErrInvalidCredentials when the account is rejected and a
// *model.AuthFailure when the protocol itself goes wrong.
func (a *Authenticator) Authenticate(ctx context.Context, cred model.Credential) (*Result, error) {
	resp, err := a.client.Get(ctx, a.ssoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach SSO root: %w", err)
	}

	var result *Result
	switch resp.StatusCode {
	case http.StatusOK:
		a.logger.Debug("SSO root served login form", "topology", model.TopologyDirect.String())
		if _, err := a.submitLoginForm(ctx, cred, resp); err != nil {
			return nil, err
		}
		result = &Result{Topology: model.TopologyDirect}
	case http.StatusFound:
		a.logger.Debug("SSO root redirected", "topology", model.TopologyWebVPN.String())
		desc, err := a.webVPNLogin(ctx, cred, resp)
		if err != nil {
			return nil, err
		}
		result = &Result{Topology: model.TopologyWebVPN, Descriptor: desc}
	default:
		return nil, model.NewAuthFailure(model.HTTPStatusReason(resp.StatusCode), nil)
	}

	a.recordTopology(ctx, result.Topology)
	return result, nil
}

// ServiceLogin logs in to a CAS service. An empty service logs in to the SSO
// itself. When a ticket already exists the SSO redirects straight to the
// service and no form is posted.
func (a *Authenticator) ServiceLogin(ctx context.Context, cred model.Credential, service string) (*transport.Response, error) {
	target := a.ssoURL
	if service != "" {
		target = a.ssoURL + "?service=" + url.QueryEscape(service)
	}

	resp, err := a.client.Get(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach SSO service login: %w", err)
	}

	if resp.StatusCode == http.StatusFound && resp.Location() != "" {
		next, err := resolveLocation(resp.URL, resp.Location())
		if err != nil {
			return nil, err
		}
		return a.chaser.Follow(ctx, next, 0, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewAuthFailure(model.HTTPStatusReason(resp.StatusCode), nil)
	}
	return a.submitLoginForm(ctx, cred, resp)
}

// submitLoginForm posts the credentials together with the hidden fields of
// page back to the URL that served it.
func (a *Authenticator) submitLoginForm(ctx context.Context, cred model.Credential, page *transport.Response) (*transport.Response, error) {
	post, err := a.client.PostForm(ctx, page.URL.String(), nil, loginForm(page.Text(), cred))
	if err != nil {
		return nil, fmt.Errorf("failed to submit login form: %w", err)
	}

	switch {
	case post.StatusCode == http.StatusFound && post.Location() != "":
		next, err := resolveLocation(post.URL, post.Location())
		if err != nil {
			return nil, err
		}
		final, err := a.chaser.Follow(ctx, next, 0, nil)
		if err != nil {
			return nil, err
		}
		if containsFailureMarker(final.Text()) {
			return nil, model.ErrInvalidCredentials
		}
		if final.StatusCode >= http.StatusBadRequest {
			return nil, model.NewAuthFailure(model.HTTPStatusReason(final.StatusCode), nil)
		}
		return final, nil
	case post.StatusCode == http.StatusOK:
		if containsFailureMarker(post.Text()) {
			return nil, model.ErrInvalidCredentials
		}
		return post, nil
	default:
		return nil, model.NewAuthFailure(model.HTTPStatusReason(post.StatusCode), nil)
	}
}

// webVPNLogin runs the tunnel login starting from the SSO root's 302.
func (a *Authenticator) webVPNLogin(ctx context.Context, cred model.Credential, root *transport.Response) (*model.SessionDescriptor, error) {
	if root.Location() == "" {
		return nil, model.NewAuthFailure(model.ReasonMissingRedirect, nil)
	}
	loginURL, err := resolveLocation(root.URL, root.Location())
	if err != nil {
		return nil, model.NewAuthFailure(model.ReasonMissingRedirect, err)
	}

	page, err := a.chaser.Follow(ctx, loginURL, 0, nil)
	if err != nil {
		return nil, err
	}
	if page.StatusCode != http.StatusOK {
		return nil, model.NewAuthFailure(model.HTTPStatusReason(page.StatusCode), nil)
	}

	post, err := a.client.PostForm(ctx, page.URL.String(), nil, loginForm(page.Text(), cred))
	if err != nil {
		return nil, fmt.Errorf("failed to submit WebVPN login form: %w", err)
	}

	switch {
	case post.StatusCode == http.StatusFound && post.Location() != "":
	case post.StatusCode == http.StatusOK && containsFailureMarker(post.Text()):
		return nil, model.ErrInvalidCredentials
	case post.StatusCode == http.StatusOK || post.StatusCode == http.StatusFound:
		return nil, model.NewAuthFailure(model.ReasonMissingRedirect, nil)
	default:
		return nil, model.NewAuthFailure(model.HTTPStatusReason(post.StatusCode), nil)
	}

	next, err := resolveLocation(post.URL, post.Location())
	if err != nil {
		return nil, model.NewAuthFailure(model.ReasonMissingRedirect, err)
	}

	header := http.Header{}
	header.Set("Referer", a.vpnURL)
	final, err := a.chaser.Follow(ctx, next, 0, header)
	if err != nil {
		return nil, err
	}
	if final.StatusCode >= http.StatusBadRequest {
		return nil, model.NewAuthFailure(model.HTTPStatusReason(final.StatusCode), nil)
	}

	return a.readClientInfo(final.URL.String(), next, a.vpnURL)
}

// readClientInfo finds the clientInfo cookie for the first candidate URL
// that has one and decodes it.
func (a *Authenticator) readClientInfo(candidates ...string) (*model.SessionDescriptor, error) {
	for _, candidate := range candidates {
		cookie, ok := a.client.Cookie(candidate, clientInfoCookie)
		if !ok {
			continue
		}
		desc, err := decodeClientInfo(cookie.Value)
		if err != nil {
			return nil, model.NewAuthFailure(model.ReasonMalformedSessionCookie, err)
		}
		return desc, nil
	}
	return nil, model.NewAuthFailure(model.ReasonMissingSessionCookie, nil)
}

// decodeClientInfo base64-decodes and JSON-decodes a clientInfo value.
// The gateway has been seen emitting both padded and unpadded, standard and
// URL-safe encodings, sometimes percent-escaped.
func decodeClientInfo(value string) (*model.SessionDescriptor, error) {
	if unescaped, err := url.PathUnescape(value); err == nil {
		value = unescaped
	}
	value = strings.Trim(value, `" `)

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var decodeErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(value)
		if err != nil {
			decodeErr = errors.Join(decodeErr, err)
			continue
		}
		desc, err := model.ParseSessionDescriptor(raw)
		if err != nil {
			return nil, err
		}
		return &desc, nil
	}
	return nil, decodeErr
}

func (a *Authenticator) recordTopology(ctx context.Context, topology model.LoginTopology) {
	if a.properties == nil {
		return
	}
	if err := a.properties.SetProperty(ctx, TopologyPropertyKey, topology.String()); err != nil {
		a.logger.Warn("failed to record login topology", "error", err)
	}
}

// loginForm merges the scraped hidden fields with the credentials. The SSO
// expects the password base64 encoded.
func loginForm(page string, cred model.Credential) url.Values {
	form := url.Values{}
	for name, value := range ExtractHiddenFields(page) {
		form.Set(name, value)
	}
	form.Set("username", cred.Username())
	form.Set("password", base64.StdEncoding.EncodeToString([]byte(cred.Password())))
	return form
}

func containsFailureMarker(page string) bool {
	for _, marker := range failureMarkers {
		if strings.Contains(page, marker) {
			return true
		}
	}
	return false
}
