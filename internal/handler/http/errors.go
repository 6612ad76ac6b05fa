// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNotMultipart is returned when an upload body is not multipart/form-data.
	ErrNotMultipart = errors.New("upload is not a multipart/form-data request")

	// ErrMissingPackPart is returned when an upload has no "resource-pack" part.
	ErrMissingPackPart = errors.New("upload has no resource-pack part")

	// ErrInvalidPackPath is returned when the pack id in the path cannot be decoded.
	ErrInvalidPackPath = errors.New("invalid pack id in path")
)
