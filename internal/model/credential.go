package model

import "log/slog"

// Credential is the account used to log in to the portal.
// It is immutable once created; fields are only reachable through accessors.
type Credential struct {
	username string
	password string
}

// NewCredential creates a Credential. Surrounding whitespace in the username
// is kept verbatim because the upstream SSO compares it byte for byte.
func NewCredential(username, password string) Credential {
	return Credential{username: username, password: password}
}

// Username returns the account name.
func (c Credential) Username() string {
	return c.username
}

// Password returns the plain-text password.
func (c Credential) Password() string {
	return c.password
}

// IsZero reports whether either part of the credential is missing.
func (c Credential) IsZero() bool {
	return c.username == "" || c.password == ""
}

// LogValue implements slog.LogValuer so that a Credential never leaks its
// password into log output, even with a plain handler.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.username),
		slog.Bool("has_password", c.password != ""),
	)
}
