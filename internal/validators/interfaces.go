// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks pack ids and upload file names accepted by the
// development pack host before they reach storage.
package validators

import "context"

// Validator checks v. When fields are given only those fields are checked;
// otherwise every field the value type knows is.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
