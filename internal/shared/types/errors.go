package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials reports an exhausted credential provider chain.
	ErrNoCredentials = errors.New("no usable AWS credentials found. Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, configure a named profile, or attach an instance role")

	// ErrNoBillingData marks a query window that predates the account's
	// billing history. Callers substitute a zero cost figure.
	ErrNoBillingData = errors.New("no billing data available for the requested period")

	// ErrInvalidRange marks a query window the billing API rejects, such
	// as a forecast window lying entirely in the past. Hitting it means
	// the window calculation is wrong.
	ErrInvalidRange = errors.New("cost query window is invalid")
)

// APIError wraps a billing API failure with the operation that raised it.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
