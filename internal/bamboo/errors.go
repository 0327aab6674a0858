// ABOUTME: Error classification for BambooHR API responses.
// ABOUTME: Maps every failure mode to a fixed category so callers never see raw errors.

package bamboo

import (
	"encoding/json"
	"fmt"
)

// Category identifies the class of an API failure. Every error produced by
// the client carries exactly one category.
type Category string

const (
	// HTTP status categories.
	CategoryBadRequest    Category = "bad_request"
	CategoryUnauthorized  Category = "unauthorized"
	CategoryForbidden     Category = "forbidden"
	CategoryNotFound      Category = "not_found"
	CategoryRateLimited   Category = "rate_limited"
	CategoryUpstreamError Category = "upstream_error"
	CategoryUnknownStatus Category = "unknown_status"

	// CategoryNetwork covers requests that never reached the upstream:
	// DNS failure, connection refused, timeout.
	CategoryNetwork Category = "network_error"

	// CategoryRequestSetup covers requests that failed before being sent,
	// e.g. an unmarshalable body or a malformed URL.
	CategoryRequestSetup Category = "request_setup_error"
)

// APIError is the classified form of a failed API exchange. It is constructed
// once inside the client and never mutated afterward.
type APIError struct {
	Category   Category
	Message    string
	StatusCode int   // zero for network and setup errors
	Details    []any // upstream "errors" field, when present
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody is the error shape BambooHR returns for failed requests.
// Either field may be absent; the body may not be JSON at all.
type errorBody struct {
	Message string `json:"message"`
	Errors  []any  `json:"errors"`
}

// classifyStatus maps a non-2xx response to an APIError. The message combines
// the category label with any message found in the response body, falling back
// to a generic description when the body is absent or unparsable.
func classifyStatus(status int, body []byte) *APIError {
	var parsed errorBody
	if len(body) > 0 {
		// Best effort only. A non-JSON body leaves parsed zero-valued.
		_ = json.Unmarshal(body, &parsed)
	}

	switch status {
	case 400:
		msg := parsed.Message
		if msg == "" {
			msg = "invalid request parameters"
		}
		return &APIError{
			Category:   CategoryBadRequest,
			Message:    "Bad Request: " + msg,
			StatusCode: status,
			Details:    parsed.Errors,
		}
	case 401:
		return &APIError{
			Category:   CategoryUnauthorized,
			Message:    "Unauthorized: invalid API key or company domain",
			StatusCode: status,
		}
	case 403:
		return &APIError{
			Category:   CategoryForbidden,
			Message:    "Forbidden: insufficient permissions",
			StatusCode: status,
		}
	case 404:
		msg := parsed.Message
		if msg == "" {
			msg = "resource not found"
		}
		return &APIError{
			Category:   CategoryNotFound,
			Message:    "Not Found: " + msg,
			StatusCode: status,
		}
	case 429:
		return &APIError{
			Category:   CategoryRateLimited,
			Message:    "Rate Limit Exceeded: too many requests",
			StatusCode: status,
		}
	case 500:
		return &APIError{
			Category:   CategoryUpstreamError,
			Message:    "Internal Server Error: BambooHR service error",
			StatusCode: status,
		}
	default:
		msg := parsed.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", status)
		}
		return &APIError{
			Category:   CategoryUnknownStatus,
			Message:    msg,
			StatusCode: status,
			Details:    parsed.Errors,
		}
	}
}

// networkError classifies a transport-level failure (the request never
// received a response).
func networkError(err error) *APIError {
	return &APIError{
		Category: CategoryNetwork,
		Message:  "Network Error: " + err.Error(),
	}
}

// setupError classifies a failure that happened before the request was sent.
func setupError(err error) *APIError {
	return &APIError{
		Category: CategoryRequestSetup,
		Message:  "Request Setup Error: " + err.Error(),
	}
}
