// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the build metadata a binary was linked with. A zero value
// means the binary was built without -ldflags.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }

func (a AppBuildInfo) BuildDate() string { return a.date }

func (a AppBuildInfo) BuildCommit() string { return a.commit }

// String renders "version (commit C, built D)", leaving out unknown parts.
func (a AppBuildInfo) String() string {
	version := a.version
	if version == "" {
		version = "dev"
	}

	switch {
	case a.commit != "" && a.date != "":
		return fmt.Sprintf("%s (commit %s, built %s)", version, a.commit, a.date)
	case a.commit != "":
		return fmt.Sprintf("%s (commit %s)", version, a.commit)
	case a.date != "":
		return fmt.Sprintf("%s (built %s)", version, a.date)
	default:
		return version
	}
}
