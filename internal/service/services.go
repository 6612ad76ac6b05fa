package service

import (
	"fmt"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

type Services struct {
	PackService    PackService
	AppInfoService AppInfoService
}

// NewServices builds the services of the development pack host. Every
// pack request is validated before it reaches files.
func NewServices(files store.PackFiles, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	packs, err := NewPackService(files, logger)
	if err != nil {
		return nil, fmt.Errorf("create pack service: %w", err)
	}

	appInfo, err := NewAppInfoService(build, logger)
	if err != nil {
		return nil, fmt.Errorf("create app info service: %w", err)
	}

	return &Services{
		PackService:    NewPackValidationService().Wrap(packs),
		AppInfoService: appInfo,
	}, nil
}
