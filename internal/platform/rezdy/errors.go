package rezdy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEndpoint flags a malformed or non-absolute upstream base URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrNotFound is the "no matching order" sentinel. It marks a legitimate
	// empty result, never a failure, and callers absorb it locally.
	ErrNotFound = errors.New("no matching order found")
)

// orderNotFoundCode is the upstream business-error code that means "no order
// matched the lookup". Upstream also spells it out in the error message, so
// both are checked.
const orderNotFoundCode = "ORDER_NOT_FOUND"

// APIError carries the upstream-provided error detail from a
// requestStatus.success=false response body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("upstream error %s: %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return "upstream error: " + e.Message
	}
	return "upstream error " + e.Code
}

// NotFound reports whether this error is the no-order-found sentinel.
func (e *APIError) NotFound() bool {
	if strings.EqualFold(strings.TrimSpace(e.Code), orderNotFoundCode) {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "no order")
}

// IsNotFound classifies an error as the not-found sentinel, whether it came
// from an HTTP 404 or an upstream business error body.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
