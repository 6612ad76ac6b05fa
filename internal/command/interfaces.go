// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package command maps text commands typed by an operator onto the
// operations of the pack registry.
package command

import (
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
	"github.com/MKhiriev/go-pack-sync/internal/store"
)

// Sender is whoever typed a command. Replies are sent back to it.
type Sender interface {
	pack.Recipient
	HasPermission(permission string) bool
}

// Engine is the part of [pack.Registry] the commands drive.
type Engine interface {
	SyncAll(to pack.Recipient, scope string) bool
	ChangeID(to pack.Recipient, packID, scope string) error
	Remove(to pack.Recipient, scope string) bool
	PrintStatus(to pack.Recipient, scope string) bool
	ListScopes() []string
	Journal() store.SyncJournal
	SetPolicy(policy config.Policy)
}

// ConfigLoader rebuilds the packsync configuration from its sources.
type ConfigLoader func() (*config.SyncConfig, error)

var _ Engine = (*pack.Registry)(nil)
