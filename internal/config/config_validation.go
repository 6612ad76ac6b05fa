// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] is usable by at
// least one binary. Binary-specific rules live on the views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.TickInterval < 0 || cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *SyncConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.Root) == "" {
		return ErrInvalidStorageConfigs
	}

	u, err := url.Parse(strings.TrimSpace(cfg.Remote.URLPrefix))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidRemoteConfigs
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Workers.TickInterval <= 0 || cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *HostConfig) validate() error {
	if strings.TrimSpace(cfg.Server.HTTPAddress) == "" {
		return ErrInvalidServerConfigs
	}

	if strings.TrimSpace(cfg.Server.DataDir) == "" || cfg.Server.MaxUploadSize <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
