package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/sso"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

const (
	// DefaultBaseURL is the application API root.
	DefaultBaseURL = "http://jwqywx.cczu.edu.cn:8180"

	// DefaultReferer and DefaultOrigin are sent with every API request.
	DefaultReferer = "http://jwqywx.cczu.edu.cn/"
	DefaultOrigin  = "http://jwqywx.cczu.edu.cn"
)

// Authenticator performs the SSO part of a login. *sso.Authenticator
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, cred model.Credential) (*sso.Result, error)
}

// Cache is the best-effort disk cache. Read returns an error on a miss.
type Cache interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Client talks to the application API on behalf of one account.
type Client struct {
	doer     transport.Doer
	auth     Authenticator
	cache    Cache
	baseURL  string
	logger   *slog.Logger
	prefetch bool

	mu      sync.Mutex
	cred    model.Credential
	session model.Session
	headers http.Header
	plan    *model.TrainingPlan
	lastRaw string

	group singleflight.Group
	wg    sync.WaitGroup
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithCache enables the disk cache for training plans.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPrefetch controls the background training plan load after login.
// It is on by default.
func WithPrefetch(enabled bool) Option {
	return func(c *Client) {
		c.prefetch = enabled
	}
}

// NewClient creates an anonymous Client. auth runs the SSO login.
func NewClient(doer transport.Doer, auth Authenticator, opts ...Option) *Client {
	c := &Client{
		doer:     doer,
		auth:     auth,
		baseURL:  DefaultBaseURL,
		logger:   slog.Default(),
		prefetch: true,
		session:  model.Anonymous{},
		headers:  applicationHeaders(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// applicationHeaders builds the immutable header set for API calls.
// An empty token omits Authorization.
func applicationHeaders(bearer string) http.Header {
	h := http.Header{}
	h.Set("Referer", DefaultReferer)
	h.Set("Origin", DefaultOrigin)
	if bearer != "" {
		h.Set("Authorization", bearer)
	}
	return h
}

// Session returns the current session.
func (c *Client) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Authenticate runs the SSO login, then the application login, and
// replaces the session. A training plan prefetch is started in the
// background; its failure is only logged.
func (c *Client) Authenticate(ctx context.Context, cred model.Credential) (*model.Authenticated, error) {
	result, err := c.auth.Authenticate(ctx, cred)
	if err != nil {
		return nil, err
	}

	token, user, err := c.appLogin(ctx, cred)
	if err != nil {
		return nil, err
	}

	session, err := model.NewAuthenticated(token, string(user.ID), string(user.UserID), result.Topology)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cred = cred
	c.session = session
	c.headers = applicationHeaders(session.BearerToken())
	c.plan = nil
	c.mu.Unlock()

	c.logger.Debug("application login succeeded", "session", session)

	if c.prefetch {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if _, err := c.TrainingPlan(context.WithoutCancel(ctx)); err != nil {
				c.logger.Debug("training plan prefetch failed", "error", err)
			}
		}()
	}
	return session, nil
}

// appLogin posts the account to /api/login and returns the token and user row.
func (c *Client) appLogin(ctx context.Context, cred model.Credential) (string, model.LoginUserData, error) {
	body := map[string]string{
		"userid":  cred.Username(),
		"userpwd": cred.Password(),
	}
	resp, err := c.doer.PostJSON(ctx, c.baseURL+"/api/login", applicationHeaders(""), body)
	if err != nil {
		return "", model.LoginUserData{}, fmt.Errorf("application login failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", model.LoginUserData{}, model.NewAuthFailure(model.HTTPStatusReason(resp.StatusCode), nil)
	}

	var msg model.Message[model.LoginUserData]
	if err := json.Unmarshal(resp.Body, &msg); err != nil {
		return "", model.LoginUserData{}, fmt.Errorf("%w: login response: %w", model.ErrMalformedResponse, err)
	}
	if msg.Token == "" {
		return "", model.LoginUserData{}, model.NewAuthFailure(model.ReasonMissingToken, nil)
	}
	user, ok := msg.First()
	if !ok {
		return "", model.LoginUserData{}, model.NewAuthFailure(model.ReasonMissingUser, nil)
	}
	if user.ID == "" || user.UserID == "" {
		return "", model.LoginUserData{}, model.ErrInvalidCredentials
	}
	return msg.Token, user, nil
}

// Close waits for background work started by Authenticate.
func (c *Client) Close() error {
	c.wg.Wait()
	return nil
}

// state is a consistent snapshot of the login state.
type state struct {
	session *model.Authenticated
	cred    model.Credential
	headers http.Header
}

// authenticated returns the login snapshot or model.ErrSessionMissing.
func (c *Client) authenticated() (state, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.session.(*model.Authenticated)
	if !ok {
		return state{}, model.ErrSessionMissing
	}
	return state{session: s, cred: c.cred, headers: c.headers}, nil
}

func (c *Client) currentHeaders() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.headers
}

// post sends body to path and returns the raw response body.
func (c *Client) post(ctx context.Context, path string, header http.Header, body any) ([]byte, error) {
	resp, err := c.doer.PostJSON(ctx, c.baseURL+path, header, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}

// decodeMessage decodes a {status, message:[T]} envelope.
func decodeMessage[T any](path string, data []byte) ([]T, error) {
	var msg model.Message[T]
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrMalformedResponse, path, err)
	}
	return msg.Message, nil
}

// fetch posts body to path and decodes the message list.
func fetch[T any](ctx context.Context, c *Client, path string, header http.Header, body any) ([]T, error) {
	data, err := c.post(ctx, path, header, body)
	if err != nil {
		return nil, err
	}
	return decodeMessage[T](path, data)
}
