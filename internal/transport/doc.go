// Package transport provides the HTTP client used to talk to the campus portal.
//
// The client never follows redirects on its own. The SSO login flow needs to
// see every 302 and its Location header, so redirect handling lives in the
// sso package. Cookies are kept in a jar backed by the public suffix list so
// that the session survives across the SSO host, the WebVPN gateway and the
// application host.
//
// The package is designed to be used with dependency injection: create one
// Client and pass it to the components that need network access.
package transport
