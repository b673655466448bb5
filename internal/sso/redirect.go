package sso

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

// MaxRedirectDepth is the number of GETs a single chase may perform.
const MaxRedirectDepth = 10

// HTTPClient is the subset of transport.Client the login flow needs.
type HTTPClient interface {
	Get(ctx context.Context, rawURL string, header http.Header) (*transport.Response, error)
	PostForm(ctx context.Context, rawURL string, header http.Header, form url.Values) (*transport.Response, error)
	Cookie(rawURL, name string) (*http.Cookie, bool)
}

// RedirectChaser follows 302 responses one GET at a time.
type RedirectChaser struct {
	client   HTTPClient
	maxDepth int
}

// NewRedirectChaser creates a RedirectChaser limited to MaxRedirectDepth hops.
func NewRedirectChaser(client HTTPClient) *RedirectChaser {
	return &RedirectChaser{client: client, maxDepth: MaxRedirectDepth}
}

// Follow GETs rawURL and keeps following 302 responses that carry a Location
// header. depth is the number of hops already taken by the caller; once it
// reaches the limit Follow fails with model.ErrTooManyRedirects before
// issuing another request. Any other response is returned as-is.
func (r *RedirectChaser) Follow(ctx context.Context, rawURL string, depth int, header http.Header) (*transport.Response, error) {
	current := rawURL
	for ; ; depth++ {
		if depth >= r.maxDepth {
			return nil, fmt.Errorf("%w: stopped at %s", model.ErrTooManyRedirects, current)
		}

		resp, err := r.client.Get(ctx, current, header)
		if err != nil {
			return nil, err
		}

		location := resp.Location()
		if resp.StatusCode != http.StatusFound || location == "" {
			return resp, nil
		}

		next, err := resolveLocation(resp.URL, location)
		if err != nil {
			return nil, err
		}
		current = next
	}
}

// resolveLocation resolves a Location header against the URL that returned it.
func resolveLocation(base *url.URL, location string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("%w: bad redirect location %q: %w", model.ErrMalformedResponse, location, err)
	}
	if base == nil {
		if !ref.IsAbs() {
			return "", fmt.Errorf("%w: relative redirect location %q without base", model.ErrMalformedResponse, location)
		}
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
