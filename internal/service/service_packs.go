package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/store"
)

type packService struct {
	files store.PackFiles

	logger *logger.Logger
}

func NewPackService(files store.PackFiles, logger *logger.Logger) (PackService, error) {
	if files == nil {
		return nil, ErrNoPackStorage
	}
	return &packService{
		files:  files,
		logger: logger,
	}, nil
}

func (p *packService) Stat(ctx context.Context, packID string) (int64, error) {
	rc, size, err := p.files.Open(ctx, packID)
	if err != nil {
		return 0, err
	}
	_ = rc.Close()

	return size, nil
}

func (p *packService) Open(ctx context.Context, packID string) (io.ReadCloser, int64, error) {
	return p.files.Open(ctx, packID)
}

func (p *packService) Upload(ctx context.Context, packID, fileName string, r io.Reader) (int64, error) {
	written, err := p.files.Save(ctx, packID, r)
	if err != nil {
		return written, fmt.Errorf("save pack %q: %w", packID, err)
	}

	p.logger.Info().Str("pack_id", packID).Str("file_name", fileName).Int64("bytes", written).Msg("pack stored")
	return written, nil
}
