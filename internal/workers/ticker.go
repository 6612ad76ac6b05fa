package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
)

type tickerWorker struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTickerWorker returns a Worker calling fn every interval. fn never runs
// concurrently with itself. A zero or negative interval defaults to one second.
func NewTickerWorker(name string, interval time.Duration, fn func(ctx context.Context), log *logger.Logger) Worker {
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &tickerWorker{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   log.WithStr("worker", name),
	}
}

// Start stops any previous loop and launches a new one.
func (w *tickerWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Debug().Dur("interval", w.interval).Msg("worker started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				w.logger.Debug().Msg("worker stopped")
				return
			case <-t.C:
				w.fn(loopCtx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (w *tickerWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
