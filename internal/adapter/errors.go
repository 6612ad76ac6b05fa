package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedURL is returned when the configured URL prefix cannot be
	// turned into request URLs.
	ErrMalformedURL = errors.New("malformed pack host url")

	// ErrTransport is returned when no response could be obtained from the
	// pack host (connection refused, reset, DNS failure, ...).
	ErrTransport = errors.New("pack host unreachable")

	// ErrTimeout is returned when a request exceeded the configured timeout.
	// It wraps ErrTransport.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrTransport)

	// ErrPackRead is returned by Upload when the local pack could not be read
	// while it was being streamed.
	ErrPackRead = errors.New("reading local pack")
)
