package sweetpay

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure into one of the closed set of error
// categories the Sweetpay API can produce. Every failed operation
// surfaces exactly one *Error carrying a Kind; there is no other
// failure signal for transport or API problems.
type Kind int

const (
	// KindRequest marks a transport-layer failure that is not a
	// timeout. Inspect Cause for the underlying net/http error.
	KindRequest Kind = iota

	// KindTimeout marks a request that exceeded its deadline.
	KindTimeout

	// KindBadData marks a 400: the server rejected the request body,
	// usually because a required parameter is missing.
	KindBadData

	// KindInvalidParameter marks a 422: a parameter was present but
	// structurally invalid.
	KindInvalidParameter

	// KindUnauthorized marks a 401: the API token was rejected.
	KindUnauthorized

	// KindNotFound marks a 404.
	KindNotFound

	// KindMethodNotAllowed marks a 405. This signals client misuse of
	// the API rather than a server problem; it is not retryable.
	KindMethodNotAllowed

	// KindInternalServer marks a 500.
	KindInternalServer

	// KindProxy marks a 502 or 504. Note that a resource creation may
	// have succeeded upstream even though the proxy failed.
	KindProxy

	// KindUnderMaintenance marks a 503.
	KindUnderMaintenance

	// KindFailureStatus marks a 2xx response whose body carries a
	// non-OK business status. The literal status is on Error.Status.
	KindFailureStatus
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTimeout:
		return "timeout"
	case KindBadData:
		return "bad_data"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindInternalServer:
		return "internal_server"
	case KindProxy:
		return "proxy"
	case KindUnderMaintenance:
		return "under_maintenance"
	case KindFailureStatus:
		return "failure_status"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Kind sentinels. errors.Is(err, sweetpay.ErrTimeout) matches any
// *Error with KindTimeout, so callers can branch without unwrapping.
var (
	ErrRequest          = errors.New("sweetpay: request failed")
	ErrTimeout          = errors.New("sweetpay: request timed out")
	ErrBadData          = errors.New("sweetpay: bad request data")
	ErrInvalidParameter = errors.New("sweetpay: invalid parameter")
	ErrUnauthorized     = errors.New("sweetpay: unauthorized")
	ErrNotFound         = errors.New("sweetpay: not found")
	ErrMethodNotAllowed = errors.New("sweetpay: method not allowed")
	ErrInternalServer   = errors.New("sweetpay: internal server error")
	ErrProxy            = errors.New("sweetpay: proxy error")
	ErrUnderMaintenance = errors.New("sweetpay: under maintenance")
	ErrFailureStatus    = errors.New("sweetpay: failure status")
)

func (k Kind) sentinel() error {
	switch k {
	case KindRequest:
		return ErrRequest
	case KindTimeout:
		return ErrTimeout
	case KindBadData:
		return ErrBadData
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindMethodNotAllowed:
		return ErrMethodNotAllowed
	case KindInternalServer:
		return ErrInternalServer
	case KindProxy:
		return ErrProxy
	case KindUnderMaintenance:
		return ErrUnderMaintenance
	case KindFailureStatus:
		return ErrFailureStatus
	}
	return nil
}

// Error is the failure record returned by every operation that did not
// produce a Response. All fields except Kind and Message may be absent:
// a transport failure has no StatusCode, a 401 usually has no Status,
// an undecodable body leaves Data nil.
type Error struct {
	Kind    Kind
	Message string

	// Data is the decoded response body, when one was received and
	// decoded.
	Data any

	// Status is the business status string from the response body,
	// when present.
	Status string

	// StatusCode is the HTTP status code. Zero when the request never
	// reached the server.
	StatusCode int

	// Cause is the underlying transport error, when there is one.
	Cause error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		if e.Status != "" {
			return fmt.Sprintf("sweetpay: %s (http %d, status %s): %s", e.Kind, e.StatusCode, e.Status, e.Message)
		}
		return fmt.Sprintf("sweetpay: %s (http %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("sweetpay: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("sweetpay: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// AsError unwraps err into a *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
