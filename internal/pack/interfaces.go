// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pack implements the synchronization engine: one [State] per scope
// and the [Registry] that owns them.
//
// Every mutating operation only queues work. Network and file I/O run as
// background jobs on the shared scheduler worker; user-visible messages and
// broadcasts are queued on the foreground queue and delivered when the host
// drains it from its tick.
package pack

import (
	"github.com/MKhiriev/go-pack-sync/internal/scheduler"
	"github.com/MKhiriev/go-pack-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/pack_mock.go -package=mock

// Recipient receives messages addressed to a single requester.
type Recipient interface {
	Send(msg models.Message)
}

// Broadcaster delivers a message to every participant of scope, or to all
// participants when scope is the default scope ("").
type Broadcaster interface {
	Broadcast(scope string, msg models.Message)
}

// Participant is a connected client that can be handed a pack.
type Participant interface {
	ApplyPack(url string, digest []byte)
}

// Member is a participant that can also be messaged directly and removed.
// Hosts that report pack statuses implement it.
type Member interface {
	Participant
	Recipient
	Name() string
	Kick(reason string)
}

// CommandRunner runs an operator command line with console permissions.
type CommandRunner interface {
	RunCommand(line string)
}

// Queue is the part of the scheduler a State needs.
type Queue interface {
	Foreground(task scheduler.Task)
	Background(name string, job scheduler.Job)
}
