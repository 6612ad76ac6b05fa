package config

import (
	"fmt"
	"time"
)

// SyncConfig is the configuration view of the packsync binary.
type SyncConfig struct {
	// App contains process-wide settings.
	App App
	// Storage contains the local pack root and the journal DSN.
	Storage Storage
	// Remote contains the pack host location.
	Remote Remote
	// Workers contains the tick and periodic sync intervals.
	Workers Workers
	// Policy contains the reactions to declined and failed pack offers.
	Policy Policy
}

// HostConfig is the configuration view of the development pack host.
type HostConfig struct {
	// App contains process-wide settings.
	App App
	// Server contains the listen address, data folder and limits.
	Server Server
}

// GetSyncConfig builds and validates a [SyncConfig] from the merged
// structured configuration.
func GetSyncConfig(args []string) (*SyncConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	syncCfg := cfg.SyncView()
	return syncCfg, syncCfg.validate()
}

// GetHostConfig builds and validates a [HostConfig] from the merged
// structured configuration.
func GetHostConfig(args []string) (*HostConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	hostCfg := cfg.HostView()
	return hostCfg, hostCfg.validate()
}

// SyncView maps the fields relevant to the synchronization engine.
func (cfg *StructuredConfig) SyncView() *SyncConfig {
	return &SyncConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Remote:  cfg.Remote,
		Workers: cfg.Workers,
		Policy:  cfg.Policy,
	}
}

// HostView maps the fields relevant to the development pack host.
func (cfg *StructuredConfig) HostView() *HostConfig {
	return &HostConfig{
		App:    cfg.App,
		Server: cfg.Server,
	}
}

// Timeout returns the configured request timeout or the default one.
func (r Remote) Timeout() time.Duration {
	if r.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return r.RequestTimeout
}
