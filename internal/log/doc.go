// Package log provides slog loggers that never print credentials.
//
// SecureHandler wraps any slog.Handler and masks:
//   - attributes whose key names a secret (password, userpwd, token,
//     cookie, clientinfo, authorization and similar)
//   - string values that look like secrets (JWTs, Bearer and Basic
//     header values, CAS tickets, long opaque ids)
//
// Masking applies at every level, including Debug, because verbose logs of
// a login flow are exactly the ones users paste into bug reports.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("posting login form", "url", page.URL, "userpwd", encoded)
//	// userpwd=***REDACTED***
package log
