package service

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// PackService serves and stores the packs of the development pack host.
type PackService interface {
	// Stat returns the size of the stored pack.
	Stat(ctx context.Context, packID string) (int64, error)

	// Open returns the stored pack and its size. The caller closes it.
	Open(ctx context.Context, packID string) (io.ReadCloser, int64, error)

	// Upload replaces the stored pack with the bytes of r. fileName is the
	// name announced by the uploader and may be empty.
	Upload(ctx context.Context, packID, fileName string, r io.Reader) (int64, error)
}

// AppInfoService reports build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
