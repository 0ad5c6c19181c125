package sweetpay

import "net/http"

// RawOutcome is the unclassified result of a single transport call,
// before any domain interpretation. A connector produces exactly one
// RawOutcome per Send; Classify consumes it exactly once. The zero
// StatusCode together with a non-nil TransportErr means the request
// never produced an HTTP response.
type RawOutcome struct {
	// StatusCode is the HTTP status, or zero when the transport failed
	// before receiving one.
	StatusCode int

	// Body is the decoded JSON response body. Nil when the body was
	// empty or not decodable as JSON.
	Body any

	// Raw is the underlying HTTP response, kept only as an opaque
	// reference for callers who need headers or the original body.
	Raw *http.Response

	// TransportErr is set when the request failed at the transport
	// layer (DNS, TLS, connection reset, deadline).
	TransportErr error

	// TimedOut distinguishes deadline expiry from other transport
	// failures.
	TimedOut bool
}

// Response is the envelope returned to callers on success. It is only
// ever built from a RawOutcome that classified as success, and is not
// mutated after construction except for the validator pipeline
// replacing Data before the envelope is handed to the caller.
type Response struct {
	// Data is the decoded response body, after any registered
	// validator rules have been applied.
	Data any

	// Status is the business status string from the body ("OK" on the
	// happy path), or empty when the body carried none.
	Status string

	// StatusCode is the HTTP status code.
	StatusCode int

	// Raw is the underlying HTTP response.
	Raw *http.Response
}

// OKStatus is the business status the API uses to signal that the
// requested operation succeeded.
const OKStatus = "OK"

// StatusOK reports whether the envelope carries the OK business status.
func (r *Response) StatusOK() bool { return r.Status == OKStatus }
