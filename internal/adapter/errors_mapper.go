package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// mapTransportError maps an error returned by the HTTP client onto the
// package sentinels. A nil error stays nil.
func mapTransportError(op string, err error) error {
	if err == nil {
		return nil
	}

	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}
