package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info AppBuildInfo
		want string
	}{
		{name: "all parts", info: NewAppBuildInfo("1.2.0", "2026-03-01", "abc123"), want: "1.2.0 (commit abc123, built 2026-03-01)"},
		{name: "commit only", info: NewAppBuildInfo("1.2.0", "", "abc123"), want: "1.2.0 (commit abc123)"},
		{name: "date only", info: NewAppBuildInfo("1.2.0", "2026-03-01", ""), want: "1.2.0 (built 2026-03-01)"},
		{name: "version only", info: NewAppBuildInfo("1.2.0", "", ""), want: "1.2.0"},
		{name: "zero value", info: AppBuildInfo{}, want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestAppBuildInfo_Accessors(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "2026-03-01", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, "2026-03-01", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
}
