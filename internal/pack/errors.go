package pack

import (
	"errors"

	"github.com/MKhiriev/go-pack-sync/internal/copier"
)

var (
	// ErrNotConfigured means a scope has no pack id. The user fixes it with changeid.
	ErrNotConfigured = errors.New("no pack configured")

	// ErrDigestUnavailable means SHA-1 is not available; the scope cannot be used.
	ErrDigestUnavailable = copier.ErrDigestUnavailable

	// ErrLocalIO wraps failures reading or writing the scope folder.
	ErrLocalIO = errors.New("local pack storage failure")

	// ErrNetwork wraps failures to reach the pack host.
	ErrNetwork = errors.New("pack host unreachable")

	// ErrUnexpectedStatus means the pack host answered with a status the
	// protocol does not expect.
	ErrUnexpectedStatus = errors.New("unexpected response code")

	// ErrRemoteGone means the pack host lost a pack that is not stored locally.
	ErrRemoteGone = errors.New("pack is gone from the pack host")

	// ErrCleanup wraps best-effort deletions that failed.
	ErrCleanup = errors.New("failed to delete")

	// ErrInvalidScope is returned for scope names that are not a single path element.
	ErrInvalidScope = errors.New("invalid scope name")

	// ErrInvalidPackID is returned for pack ids that cannot name a file.
	ErrInvalidPackID = errors.New("invalid pack id")

	// ErrUnknownScope is returned when no state is registered for a scope.
	ErrUnknownScope = errors.New("unknown scope")

	// ErrAlreadyInitialized is returned by a second Registry.Initialize.
	ErrAlreadyInitialized = errors.New("pack registry already initialized")

	// ErrSuperseded marks a background job dropped because its scope changed
	// after it was queued.
	ErrSuperseded = errors.New("superseded by a newer change")
)
