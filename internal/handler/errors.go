// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// ErrNoServices is returned by [NewHandlers] without services to route to.
	ErrNoServices = errors.New("handler: no services provided")
	// ErrNoHTTPAddress is returned by [NewHandlers] when the pack host has no
	// listen address, so no HTTP transport is built.
	ErrNoHTTPAddress = errors.New("handler: no http address configured")
)
