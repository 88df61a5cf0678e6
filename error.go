package fetch

import "fmt"

// Kind classifies a pipeline failure. The set is closed: every failed
// Result carries exactly one Kind, and no condition escapes the taxonomy.
type Kind uint8

const (
	// KindInvalidRequest means the endpoint could not build a request
	// descriptor. The request never reached the network and did not
	// perturb the activity tracker.
	KindInvalidRequest Kind = iota + 1

	// KindTransport means the transport reported an error executing the
	// request, or the response body could not be read.
	KindTransport

	// KindDataMissing means the transport reported neither an error nor
	// a body. It is kept distinct from KindTransport because it signals
	// a transport or server contract violation, not a network failure.
	KindDataMissing

	// KindMockUnavailable means the mock path was selected but the
	// endpoint has no mock payload registered.
	KindMockUnavailable

	// KindDecode means a body was received but could not be converted
	// into the requested type.
	KindDecode
)

// String returns a short stable name for the kind, usable as a metric
// label value.
func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindDataMissing:
		return "data_missing"
	case KindMockUnavailable:
		return "mock_unavailable"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the failure delivered through a Result. Kind reports which
// stage failed; Cause, when present, is the original underlying error,
// preserved for diagnostics and reachable through errors.Is and
// errors.As.
type Error struct {
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }
