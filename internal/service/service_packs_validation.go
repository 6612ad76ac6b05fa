package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pack-sync/internal/validators"
	"github.com/MKhiriev/go-pack-sync/models"
)

// PackServiceWrapper defines middleware composition for PackService.
// Implementations wrap an existing PackService to add behavior such as
// validation.
type PackServiceWrapper interface {
	Wrap(PackService) PackService // returns a decorated PackService
}

type PackValidationService struct {
	inner     PackService
	validator validators.Validator
}

func NewPackValidationService() PackServiceWrapper {
	return &PackValidationService{
		validator: validators.NewPackValidator(),
	}
}

func (v *PackValidationService) Stat(ctx context.Context, packID string) (int64, error) {
	if err := v.validator.Validate(ctx, models.PackRef{ID: packID}); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Stat(ctx, packID)
}

func (v *PackValidationService) Open(ctx context.Context, packID string) (io.ReadCloser, int64, error) {
	if err := v.validator.Validate(ctx, models.PackRef{ID: packID}); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Open(ctx, packID)
}

func (v *PackValidationService) Upload(ctx context.Context, packID, fileName string, r io.Reader) (int64, error) {
	upload := models.PackUpload{ID: packID, FileName: fileName}
	if err := v.validator.Validate(ctx, upload); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Upload(ctx, packID, fileName, r)
}

func (v *PackValidationService) Wrap(inner PackService) PackService {
	v.inner = inner
	return v
}
