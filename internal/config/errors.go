package config

import "errors"

// Validation errors returned by the view validators when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty storage root).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRemoteConfigs indicates an unusable pack host URL prefix.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidServerConfigs indicates invalid pack host settings
	// (for example, missing listen address or data folder).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid timer settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
