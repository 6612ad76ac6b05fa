// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer used by the synchronization
// engine to talk to the pack-hosting service.
//
// The primary abstraction is [PackHost], which hides the HTTP protocol:
//
//	GET  {prefix}get-resource-pack/{id}     fetch pack bytes
//	HEAD {prefix}get-resource-pack/{id}     existence check
//	POST {prefix}upload-resource-pack/{id}  multipart upload, field "resource-pack"
//
// Status codes are returned to the caller unchanged; only failures to
// obtain a response are reported as errors, mapped onto the sentinels in
// errors.go so callers can use [errors.Is].
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-pack-sync/internal/copier"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/pack_host_mock.go -package=mock

// PackHost defines communication with the pack-hosting service.
type PackHost interface {
	// PackURL returns the public download URL of packID.
	PackURL(packID string) string

	// Fetch issues GET (withBody) or HEAD for packID. On success the caller
	// owns FetchResult.Body and must close it.
	Fetch(ctx context.Context, packID string, withBody bool) (*FetchResult, error)

	// Upload sends pack as the single part of a multipart/form-data POST.
	// size is used for progress reporting only; progress may be nil.
	// pack is closed when it implements io.Closer.
	Upload(ctx context.Context, packID string, pack io.Reader, size int64, progress copier.ProgressFunc) (*UploadResult, error)
}

// FetchResult is the response to a GET or HEAD.
type FetchResult struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// ContentLength is the announced body length, or -1 when unknown.
	ContentLength int64

	// Body streams the response body. It is never nil.
	Body io.ReadCloser
}

// UploadResult is the response to an upload.
type UploadResult struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Written is the number of pack bytes copied into the request body.
	Written int64
}
