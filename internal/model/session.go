package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
)

// Session is the identity a portal client currently holds.
// It is a closed set: the only implementations are Anonymous and Authenticated.
type Session interface {
	session()
}

// Anonymous is the session before a successful login.
type Anonymous struct{}

func (Anonymous) session() {}

// Authenticated is the session after the SSO login and the application login
// both succeeded. Only *Authenticated is a Session, and values are built with
// NewAuthenticated, which refuses partial states such as a token without a
// subject ID and returns nil for them.
type Authenticated struct {
	token         string
	subjectID     string
	studentNumber string
	topology      LoginTopology
}

func (*Authenticated) session() {}

// NewAuthenticated validates every part of an authenticated session.
func NewAuthenticated(token, subjectID, studentNumber string, topology LoginTopology) (*Authenticated, error) {
	switch {
	case token == "":
		return nil, fmt.Errorf("%w: empty token", ErrIncompleteSession)
	case subjectID == "":
		return nil, fmt.Errorf("%w: empty subject id", ErrIncompleteSession)
	case studentNumber == "":
		return nil, fmt.Errorf("%w: empty student number", ErrIncompleteSession)
	case topology != TopologyDirect && topology != TopologyWebVPN:
		return nil, fmt.Errorf("%w: topology %s", ErrIncompleteSession, topology)
	}
	return &Authenticated{
		token:         token,
		subjectID:     subjectID,
		studentNumber: studentNumber,
		topology:      topology,
	}, nil
}

// Token returns the raw application token.
func (a *Authenticated) Token() string { return a.token }

// BearerToken returns the value for the Authorization header.
func (a *Authenticated) BearerToken() string { return "Bearer " + a.token }

// SubjectID returns the internal user id the portal API calls "yhid".
func (a *Authenticated) SubjectID() string { return a.subjectID }

// StudentNumber returns the student number the portal API calls "xh".
func (a *Authenticated) StudentNumber() string { return a.studentNumber }

// Topology returns how the SSO endpoint was reached.
func (a *Authenticated) Topology() LoginTopology { return a.topology }

// LogValue implements slog.LogValuer.
func (a *Authenticated) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("subject_id", a.subjectID),
		slog.String("student_number", a.studentNumber),
		slog.String("topology", a.topology.String()),
	)
}

// SessionDescriptor is the JSON payload the WebVPN gateway stores, base64
// encoded, in the clientInfo cookie. Only a handful of keys are stable across
// gateway versions, so the full object is kept in Fields.
type SessionDescriptor struct {
	Fields map[string]any `json:"fields"`
}

// ParseSessionDescriptor decodes the JSON object carried by the clientInfo cookie.
func ParseSessionDescriptor(data []byte) (SessionDescriptor, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return SessionDescriptor{}, err
	}
	if fields == nil {
		return SessionDescriptor{}, fmt.Errorf("%w: session descriptor is not an object", ErrMalformedResponse)
	}
	return SessionDescriptor{Fields: fields}, nil
}

// String returns the named field rendered as a string, or "" when absent.
func (d SessionDescriptor) String(key string) string {
	switch v := d.Fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// UserID returns the gateway user id, if present.
func (d SessionDescriptor) UserID() string {
	if v := d.String("userid"); v != "" {
		return v
	}
	return d.String("userId")
}

// Username returns the display name, if present.
func (d SessionDescriptor) Username() string {
	if v := d.String("username"); v != "" {
		return v
	}
	return d.String("userName")
}
