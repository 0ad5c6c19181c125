package sweetpay

// classify maps a RawOutcome to either a success envelope or a typed
// *Error. It is a pure decision table: no side effects, deterministic
// for a given outcome. Exactly one of the two returns is non-nil.
func classify(raw *RawOutcome) (*Response, *Error) {
	if raw.TransportErr != nil {
		kind := KindRequest
		msg := "could not send a request to the server, inspect Cause for the underlying transport error"
		if raw.TimedOut {
			kind = KindTimeout
			msg = "the request timed out"
		}
		return nil, &Error{Kind: kind, Message: msg, Cause: raw.TransportErr}
	}

	body, status := extractStatus(raw.Body)

	if raw.StatusCode >= 200 && raw.StatusCode < 300 {
		if status != "" && status != OKStatus {
			return nil, &Error{
				Kind:       KindFailureStatus,
				Message:    "the requested operation did not succeed, status is not " + OKStatus,
				Data:       body,
				Status:     status,
				StatusCode: raw.StatusCode,
			}
		}
		return &Response{Data: body, Status: status, StatusCode: raw.StatusCode, Raw: raw.Raw}, nil
	}

	// Error payloads sometimes carry the status under "error" instead
	// of "status".
	if status == "" {
		if m, ok := body.(map[string]any); ok {
			if s, ok := m["error"].(string); ok {
				status = s
			}
		}
	}

	e := &Error{Data: body, Status: status, StatusCode: raw.StatusCode}
	switch raw.StatusCode {
	case 400:
		e.Kind = KindBadData
		e.Message = "the server rejected the request data, a required parameter is most likely missing"
	case 401:
		e.Kind = KindUnauthorized
		e.Message = "the API token was invalid"
	case 404:
		e.Kind = KindNotFound
		e.Message = "the requested resource could not be found"
	case 405:
		e.Kind = KindMethodNotAllowed
		e.Message = "the method is not allowed on this endpoint"
	case 422:
		e.Kind = KindInvalidParameter
		e.Message = "a parameter was invalid or missing"
	case 500:
		e.Kind = KindInternalServer
		e.Message = "an internal server error occurred"
	case 502, 504:
		e.Kind = KindProxy
		e.Message = "a proxy error occurred; a created resource may exist despite this error"
	case 503:
		e.Kind = KindUnderMaintenance
		e.Message = "the server is under maintenance and cannot be contacted"
	default:
		e.Kind = KindRequest
		e.Message = "the server returned an unexpected response"
	}
	return nil, e
}

// extractStatus pulls the business status out of a decoded body. The
// API sometimes returns a bare JSON string; that string is the status
// and the body is treated as absent.
func extractStatus(body any) (any, string) {
	switch v := body.(type) {
	case string:
		return nil, v
	case map[string]any:
		if s, ok := v["status"].(string); ok {
			return v, s
		}
	}
	return body, ""
}
