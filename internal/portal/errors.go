package portal

import "errors"

// ErrUnexpectedStatus is returned when an API endpoint answers with a
// non-200 HTTP status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")
