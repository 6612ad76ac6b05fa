// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-pack-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SyncJournal records the outcome of every download, verification and
// upload performed by the synchronization engine.
type SyncJournal interface {
	// Record appends ev to the journal.
	Record(ctx context.Context, ev models.SyncEvent) error
	// Recent returns at most limit events of scope, newest first.
	Recent(ctx context.Context, scope string, limit int) ([]models.SyncEvent, error)
}

// PackFiles stores pack archives on the hosting side.
type PackFiles interface {
	// Open returns the archive of packID and its size.
	// Returns [ErrPackNotFound] when no archive is stored.
	Open(ctx context.Context, packID string) (io.ReadCloser, int64, error)
	// Exists reports whether an archive of packID is stored.
	Exists(ctx context.Context, packID string) (bool, error)
	// Save atomically replaces the archive of packID with the bytes of r.
	Save(ctx context.Context, packID string, r io.Reader) (int64, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
