// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrNoHTTPHandler is returned by [NewServer] when no pack host routes were built.
	ErrNoHTTPHandler = errors.New("server: no http handler to serve")
	// ErrNoListenAddress is returned by [NewServer] for an empty listen address.
	ErrNoListenAddress = errors.New("server: listen address is empty")
)
