package handler

import (
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/handler/http"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/service"
)

// Handlers groups the transports of the pack host. HTTP is the only one.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	switch {
	case services == nil:
		return nil, ErrNoServices
	case cfg.HTTPAddress == "":
		return nil, ErrNoHTTPAddress
	}

	logger.Debug().Int64("max_upload_size", cfg.MaxUploadSize).Msg("creating pack host handlers")
	return &Handlers{HTTP: http.NewHandler(services, cfg, logger)}, nil
}
