// Package sso implements the campus single sign-on login.
//
// The SSO root answers in one of two ways depending on where the client sits:
//   - 200 with the login form: the client is on the campus network and the
//     form is posted directly (topology COMMON).
//   - 302 into the WebVPN gateway: the client is outside, the login form lives
//     behind the gateway, and a successful login leaves a base64 JSON
//     "clientInfo" cookie describing the tunnel session (topology WEBVPN).
//
// Redirects are followed by RedirectChaser with a hard depth limit, because
// the transport never follows them itself. Hidden form fields are scraped
// with golang.org/x/net/html.
package sso
