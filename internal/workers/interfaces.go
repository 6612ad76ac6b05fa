// Package workers provides the host-driven timers of the synchronization
// engine. It defines the Worker interface and a Workers aggregate that
// starts and stops several workers as one.
package workers

import (
	"context"

	"github.com/MKhiriev/go-pack-sync/internal/pack"
)

// Worker is a background loop with an explicit lifecycle.
//
// Start launches the loop and returns immediately; the loop exits when ctx
// is cancelled or Stop is called. Stop blocks until the loop has exited and
// is safe to call on a worker that was never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Drainer runs queued foreground tasks.
type Drainer interface {
	Drain() int
}

// Syncer re-synchronizes scopes.
type Syncer interface {
	SyncAll(to pack.Recipient, scope string) bool
}
