package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidPackID   = errors.New("invalid pack id")
	ErrInvalidFileName = errors.New("invalid pack file name")
)
