// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Outcome is the result of one background synchronization job.
type Outcome string

const (
	// OutcomeDownloaded means the pack was fetched from the host and stored locally.
	OutcomeDownloaded Outcome = "downloaded"

	// OutcomeVerified means the host confirmed it has the pack and the local copy was kept.
	OutcomeVerified Outcome = "verified"

	// OutcomeUploaded means the host was missing the pack and accepted the local copy.
	OutcomeUploaded Outcome = "uploaded"

	// OutcomeUploadRejected means the host answered the upload with a non-200 status.
	OutcomeUploadRejected Outcome = "upload_rejected"

	// OutcomeRemoteGone means neither the host nor the local folder has the pack.
	OutcomeRemoteGone Outcome = "remote_gone"

	// OutcomeUnexpectedStatus means the host answered the existence check with
	// a status other than 200 or 404.
	OutcomeUnexpectedStatus Outcome = "unexpected_status"

	// OutcomeFailed means the job failed on local I/O, transport or digest errors.
	OutcomeFailed Outcome = "failed"

	// OutcomeSuperseded means the scope changed after the job was queued and
	// the job was dropped.
	OutcomeSuperseded Outcome = "superseded"
)

// SyncEvent is one journal row describing the outcome of a synchronization
// job for a single scope.
type SyncEvent struct {
	// Scope is the scope name; empty for the default scope.
	Scope string `json:"scope"`

	// PackID is the pack id the job was working on.
	PackID string `json:"pack_id"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// StatusCode is the last HTTP status seen by the job, or 0 when no
	// response was received.
	StatusCode int `json:"status_code"`

	// Bytes is the number of pack bytes transferred in either direction.
	Bytes int64 `json:"bytes"`

	// Detail carries an error message or other free-form context.
	Detail string `json:"detail,omitempty"`

	// RecordedAt is the time the job finished.
	RecordedAt time.Time `json:"recorded_at"`
}
