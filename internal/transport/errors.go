package transport

import "errors"

// Transport errors.
var (
	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is not
	// in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidURL is returned when a request URL cannot be parsed or is not absolute.
	ErrInvalidURL = errors.New("invalid request URL")
)
