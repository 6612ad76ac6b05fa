package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/models"
)

// ── NewAppInfoService ───────────────────────────────────────────────────────

func TestNewAppInfoService_RequiresVersion(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "2026-03-01", "abc123"), logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ── GetAppVersion ───────────────────────────────────────────────────────────

func TestGetAppVersion(t *testing.T) {
	versions := []string{"1.0.0", "v1.2.3-beta+build.42", "N/A"}

	for _, v := range versions {
		t.Run(v, func(t *testing.T) {
			svc, err := NewAppInfoService(models.NewAppBuildInfo(v, "2026-03-01", "abc123"), logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, v, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestGetAppVersion_IgnoresCancelledContext(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "", ""), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "3.1.4", svc.GetAppVersion(ctx))
}
