package minimax

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider client failures so callers can tell a
// credential problem from a transient outage from bad input.
type ErrorKind string

const (
	// KindConfig means required environment configuration is missing.
	KindConfig ErrorKind = "configuration"
	// KindAuth means the provider rejected our credentials (401/403).
	KindAuth ErrorKind = "authentication"
	// KindValidation means the request was rejected locally, before any
	// network call.
	KindValidation ErrorKind = "validation"
	// KindTransport means the HTTP exchange itself failed (network error,
	// non-2xx status).
	KindTransport ErrorKind = "transport"
	// KindProvider means HTTP succeeded but the provider reported a
	// non-zero status code in the response body. Distinct from transport
	// failure on purpose: the business operation failed, the wire did not.
	KindProvider ErrorKind = "provider"
)

// Error is a classified provider client failure.
type Error struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int   // set for transport/auth errors
	StatusCode int64 // provider base_resp.status_code, set for provider errors
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindProvider:
		return fmt.Sprintf("minimax %s error (status_code=%d): %s", e.Kind, e.StatusCode, e.Message)
	case KindTransport, KindAuth:
		if e.HTTPStatus != 0 {
			return fmt.Sprintf("minimax %s error (http=%d): %s", e.Kind, e.HTTPStatus, e.Message)
		}
	}
	return fmt.Sprintf("minimax %s error: %s", e.Kind, e.Message)
}

// KindOf returns the classification of err, or an empty kind for errors
// that did not come from this client.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
