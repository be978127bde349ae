package nmdc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind classifies why a request to the NMDC API produced no payload.
type FailureKind string

const (
	KindTransportTimeout FailureKind = "transport-timeout"
	KindTransportError   FailureKind = "transport-error"
	KindUpstreamError    FailureKind = "upstream-error"
)

// FetchError is returned for every failed NMDC request. StatusCode is set only
// for upstream errors that carried an HTTP response.
type FetchError struct {
	Kind       FailureKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("nmdc %s: GET %s: status %d: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("nmdc %s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *FetchError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

func transportError(rawURL string, err error) *FetchError {
	kind := KindTransportError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTransportTimeout
	}
	return &FetchError{Kind: kind, URL: rawURL, Err: err}
}

func upstreamError(rawURL string, status int, err error) *FetchError {
	return &FetchError{Kind: KindUpstreamError, URL: rawURL, StatusCode: status, Err: err}
}
