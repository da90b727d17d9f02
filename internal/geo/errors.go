package geo

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies adapter failures.
type Kind string

const (
	KindUnavailable Kind = "unavailable"
	KindStatus      Kind = "status"
	KindMalformed   Kind = "malformed"
	KindNoData      Kind = "no_data"
)

// AdapterError is returned by every adapter in this package.
type AdapterError struct {
	Adapter string
	Kind    Kind
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Adapter, e.Kind, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func newAdapterError(adapter string, kind Kind, err error) *AdapterError {
	return &AdapterError{Adapter: adapter, Kind: kind, Err: err}
}

// KindOf extracts the failure kind from err, or "" when err did not come from
// an adapter.
func KindOf(err error) Kind {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	return ""
}
