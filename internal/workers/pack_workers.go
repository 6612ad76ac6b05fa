// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
)

// NewDrainWorker runs the foreground queue of d every interval. The
// goroutine of this worker acts as the host thread: every queued message
// and broadcast is delivered from it.
func NewDrainWorker(d Drainer, interval time.Duration, log *logger.Logger) Worker {
	return NewTickerWorker("drain", interval, func(context.Context) {
		if n := d.Drain(); n > 0 && log != nil {
			log.Trace().Int("tasks", n).Msg("foreground queue drained")
		}
	}, log)
}

// NewPeriodicSyncWorker re-synchronizes every scope every interval with to
// as the requester.
func NewPeriodicSyncWorker(s Syncer, to pack.Recipient, interval time.Duration, log *logger.Logger) Worker {
	return NewTickerWorker("periodic-sync", interval, func(context.Context) {
		if log != nil {
			log.Info().Msg("periodic sync of every scope")
		}
		s.SyncAll(to, "")
	}, log)
}
