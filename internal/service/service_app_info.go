package service

import (
	"context"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/models"
)

type appInfoService struct {
	build  models.AppBuildInfo
	logger *logger.Logger
}

// NewAppInfoService reports the version of build. A build without a version
// is rejected so the pack host never answers /version with an empty body.
func NewAppInfoService(build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if build.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Info().Str("build", build.String()).Msg("pack host build")
	return &appInfoService{build: build, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.build.BuildVersion()
}
