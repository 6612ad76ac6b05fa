// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the packsync process runtime.
//
// It wires the pack registry, the host workers and the operator console
// into a single process lifecycle driven by lines read from an input stream.
package client
