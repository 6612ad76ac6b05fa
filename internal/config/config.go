// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// packsync and packhost binaries. It aggregates all sub-configurations and
// is populated by merging defaults, environment variables, command-line
// flags, and an optional JSON, YAML or TOML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings such as the log level.
	App App `envPrefix:"APP_"`

	// Storage holds the local pack storage root and the sync journal DSN.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the pack host location and request timeout used by the
	// synchronization engine.
	Remote Remote `envPrefix:"REMOTE_"`

	// Server holds the listen address and storage of the development pack host.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the tick and periodic sync intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Policy holds the reactions to participants that decline a pack or
	// fail to download it.
	Policy Policy `envPrefix:"POLICY_"`

	// JSONFilePath is the optional path to a configuration file. The format
	// is picked by extension and defaults to JSON.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-wide settings.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the local persistence settings of the synchronization engine.
type Storage struct {
	// Root is the folder of the default scope. Named scopes live under
	// Root/scopes/<name>.
	// Env: STORAGE_ROOT
	Root string `env:"ROOT"`

	// JournalDSN selects the sync journal database. Empty disables the
	// journal, a postgres:// or postgresql:// URL selects the pgx driver,
	// anything else is treated as a SQLite file path.
	// Env: STORAGE_JOURNAL_DSN
	JournalDSN string `env:"JOURNAL_DSN"`
}

// Remote holds the location of the pack host.
type Remote struct {
	// URLPrefix is prepended to "get-resource-pack/<id>" and
	// "upload-resource-pack/<id>" (e.g. "http://49.12.188.159/").
	// Env: REMOTE_URL_PREFIX
	URLPrefix string `env:"URL_PREFIX"`

	// RequestTimeout bounds every request made to the pack host, including
	// the body transfer.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Server holds the settings of the development pack host.
type Server struct {
	// HTTPAddress is the TCP address the pack host listens on, in
	// "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// DataDir is the folder holding uploaded packs.
	// Env: SERVER_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// MaxUploadSize limits the request body of an upload, in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`

	// RequestTimeout is the read/write timeout of the pack host.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the host-driven timer settings.
type Workers struct {
	// TickInterval is how often the foreground queue is drained.
	// Env: WORKERS_TICK_INTERVAL
	TickInterval time.Duration `env:"TICK_INTERVAL"`

	// SyncInterval is how often every scope is re-synchronized.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Policy selects how packsync reacts to a participant's answer to a pack
// offer.
type Policy struct {
	// Reject applies when the participant declines the pack.
	Reject StatusPolicy `envPrefix:"REJECT_"`

	// Failed applies when the participant could not download the pack.
	Failed StatusPolicy `envPrefix:"FAILED_"`
}

// StatusPolicy is a reaction to one pack status. The first configured of
// Command, Kick and Message is used.
type StatusPolicy struct {
	// Command is run with console permissions. "<player>" is replaced by the
	// participant name.
	// Env: POLICY_REJECT_COMMAND, POLICY_FAILED_COMMAND
	Command string `env:"COMMAND"`

	// Kick disconnects the participant with KickMessage.
	// Env: POLICY_REJECT_KICK, POLICY_FAILED_KICK
	Kick bool `env:"KICK"`

	// Env: POLICY_REJECT_KICK_MESSAGE, POLICY_FAILED_KICK_MESSAGE
	KickMessage string `env:"KICK_MESSAGE"`

	// Message is sent to the participant, who may keep playing.
	// Env: POLICY_REJECT_MESSAGE, POLICY_FAILED_MESSAGE
	Message string `env:"MESSAGE"`
}

// Defaults used when no source provides a value.
const (
	DefaultStorageRoot    = "./data/packs"
	DefaultURLPrefix      = "http://49.12.188.159/"
	DefaultRequestTimeout = 10 * time.Minute
	DefaultHTTPAddress    = "localhost:8080"
	DefaultHostDataDir    = "./data/host"
	DefaultMaxUploadSize  = 256 << 20
	DefaultTickInterval   = time.Second
	DefaultSyncInterval   = 25 * time.Minute
	DefaultLogLevel       = "info"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{LogLevel: DefaultLogLevel},
		Storage: Storage{Root: DefaultStorageRoot},
		Remote: Remote{
			URLPrefix:      DefaultURLPrefix,
			RequestTimeout: DefaultRequestTimeout,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			DataDir:        DefaultHostDataDir,
			MaxUploadSize:  DefaultMaxUploadSize,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			TickInterval: DefaultTickInterval,
			SyncInterval: DefaultSyncInterval,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (later sources
// override non-zero fields of earlier ones):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
