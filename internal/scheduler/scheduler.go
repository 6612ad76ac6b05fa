// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scheduler owns the two task queues of the synchronization engine.
//
// The foreground queue holds side effects that must run on the host's
// single authoritative thread (sending messages, broadcasting). The host
// drains it by calling [Scheduler.Drain] from its periodic tick.
//
// The background queue holds network and file jobs. One dedicated worker
// goroutine runs them one at a time, in FIFO order, for every scope of the
// engine. [Scheduler.Stop] is cooperative: the stop sentinel is queued like
// any other job, so all previously queued work completes first.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
)

// Task is a foreground side effect.
type Task func()

// Job is a unit of background work.
type Job func(ctx context.Context)

type backgroundItem struct {
	id   string
	name string
	job  Job
	stop bool
}

// Scheduler is the dual-queue executor. The zero value is not usable; use [New].
type Scheduler struct {
	foreground *queue[Task]
	background *queue[backgroundItem]

	mu       sync.Mutex
	stopping bool
	stopped  bool
	started  atomic.Bool
	done     chan struct{}

	ctx    context.Context
	logger *logger.Logger
}

// New constructs a Scheduler. The background worker is idle until Run or
// Start is called; jobs queued before that are kept.
func New(logger *logger.Logger) *Scheduler {
	return &Scheduler{
		foreground: newQueue[Task](),
		background: newQueue[backgroundItem](),
		done:       make(chan struct{}),
		ctx:        context.Background(),
		logger:     logger,
	}
}

// Foreground queues a task for the next Drain.
func (s *Scheduler) Foreground(task Task) {
	if task == nil {
		return
	}
	s.foreground.push(task)
}

// Background queues a job for the worker. name only labels log lines.
// Jobs queued after Stop are dropped.
func (s *Scheduler) Background(name string, job Job) {
	if job == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopping {
		s.logger.Warn().Str("job", name).Msg("scheduler is stopping, background job dropped")
		return
	}
	s.background.push(backgroundItem{id: uuid.NewString(), name: name, job: job})
}

// Drain runs every foreground task queued at the time of the call, in
// arrival order, and returns how many ran. Tasks queued while draining run
// on the next call. A panicking task is logged and does not stop the drain.
func (s *Scheduler) Drain() int {
	tasks := s.foreground.snapshot()
	for _, task := range tasks {
		s.runTask(task)
	}
	return len(tasks)
}

// Pending reports the number of queued foreground and background items.
func (s *Scheduler) Pending() (foreground, background int) {
	return s.foreground.len(), s.background.len()
}

// Start launches the background worker. Calling it more than once has no effect.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	go s.loop()
}

// Stop queues the stop sentinel. The worker exits after every job queued
// before the sentinel has finished. Stop does not wait; use Wait or Done.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopping {
		return
	}
	s.stopping = true
	s.background.push(backgroundItem{name: "stop", stop: true})
}

// Done is closed when the background worker has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the background worker has exited.
func (s *Scheduler) Wait() {
	<-s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)

	s.logger.Debug().Msg("background worker started")
	for !s.stopped {
		item := s.background.take()
		if item.stop {
			s.stopped = true
			continue
		}
		s.runJob(item)
	}
	s.logger.Debug().Msg("background worker stopped")
}

func (s *Scheduler) runJob(item backgroundItem) {
	log := s.logger.WithStr("job_id", item.id)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("job", item.name).Err(fmt.Errorf("panic: %v", r)).Msg("background job panicked")
		}
	}()

	log.Debug().Str("job", item.name).Msg("background job started")
	item.job(log.WithContext(s.ctx))
	log.Debug().Str("job", item.name).Msg("background job finished")
}

func (s *Scheduler) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Err(fmt.Errorf("panic: %v", r)).Msg("foreground task panicked")
		}
	}()

	task()
}
