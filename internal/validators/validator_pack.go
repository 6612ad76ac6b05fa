package validators

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-pack-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldPackID targets the pack id of a reference or upload.
	FieldPackID = "pack_id"

	// FieldFileName targets the announced file name of an upload.
	FieldFileName = "file_name"
)

// MaxPackIDLength bounds the length of a pack id.
const MaxPackIDLength = 128

const packFileExt = ".zip"

type PackValidator struct {
}

func NewPackValidator() Validator {
	return &PackValidator{}
}

func (v *PackValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PackRef:
		return v.validatePackRef(value, fields...)
	case *models.PackRef:
		return v.validatePackRef(*value, fields...)

	case models.PackUpload:
		return v.validatePackUpload(value, fields...)
	case *models.PackUpload:
		return v.validatePackUpload(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PackValidator) validatePackRef(ref models.PackRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPackID}
	}

	for _, f := range fields {
		switch f {
		case FieldPackID:
			if err := validatePackID(ref.ID); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// an empty file name is accepted, the pack id alone names the stored file
func (v *PackValidator) validatePackUpload(upload models.PackUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPackID, FieldFileName}
	}

	for _, f := range fields {
		switch f {
		case FieldPackID:
			if err := validatePackID(upload.ID); err != nil {
				return err
			}
		case FieldFileName:
			if upload.FileName == "" {
				continue
			}
			if filepath.Base(upload.FileName) != upload.FileName ||
				!strings.EqualFold(filepath.Ext(upload.FileName), packFileExt) {
				return fmt.Errorf("%w: %q", ErrInvalidFileName, upload.FileName)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

func validatePackID(id string) error {
	switch {
	case id == "", id == ".", id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidPackID, id)
	case len(id) > MaxPackIDLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidPackID, MaxPackIDLength)
	case strings.ContainsAny(id, "/\\\x00"), strings.TrimSpace(id) != id:
		return fmt.Errorf("%w: %q", ErrInvalidPackID, id)
	}
	return nil
}
