package model

import "fmt"

// LoginTopology describes how the SSO endpoint was reached.
type LoginTopology int

const (
	// TopologyUnknown is the zero value and is never assigned to a session.
	TopologyUnknown LoginTopology = iota

	// TopologyDirect means the SSO root answered 200 and the login form was
	// submitted without an intermediate tunnel.
	TopologyDirect

	// TopologyWebVPN means the SSO root redirected into the WebVPN gateway,
	// which is the case for clients outside the campus network.
	TopologyWebVPN
)

// String returns the value recorded in the property store.
func (t LoginTopology) String() string {
	switch t {
	case TopologyDirect:
		return "COMMON"
	case TopologyWebVPN:
		return "WEBVPN"
	default:
		return "UNKNOWN"
	}
}

// ParseLoginTopology converts a stored property value back to a LoginTopology.
func ParseLoginTopology(s string) (LoginTopology, error) {
	switch s {
	case "COMMON":
		return TopologyDirect, nil
	case "WEBVPN":
		return TopologyWebVPN, nil
	default:
		return TopologyUnknown, fmt.Errorf("unknown login topology %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t LoginTopology) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
