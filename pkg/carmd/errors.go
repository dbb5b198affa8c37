package carmd

import "fmt"

// TransportError reports a request that could not complete at all (DNS
// failure, connection refused, timeout). Application-level errors from the
// API (4xx/5xx) are not transport errors; they come back as a Response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("carmd: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
