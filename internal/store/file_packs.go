package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-pack-sync/internal/copier"
)

const packFileExt = ".zip"

// packFileStorage is the filesystem implementation of [PackFiles]. Every
// pack lives in dir as {id}.zip.
type packFileStorage struct {
	dir string
}

// NewPackFileStorage creates dir if needed and returns a [PackFiles] rooted
// at it.
func NewPackFileStorage(dir string) (PackFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create pack data dir: %w", err)
	}
	return &packFileStorage{dir: dir}, nil
}

func (p *packFileStorage) path(packID string) (string, error) {
	if packID == "" || packID == "." || packID == ".." ||
		strings.ContainsAny(packID, `/\`) || strings.ContainsRune(packID, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPackID, packID)
	}
	return filepath.Join(p.dir, packID+packFileExt), nil
}

// Open implements [PackFiles].
func (p *packFileStorage) Open(_ context.Context, packID string) (io.ReadCloser, int64, error) {
	path, err := p.path(packID)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrPackNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open pack: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat pack: %w", err)
	}

	return f, info.Size(), nil
}

// Exists implements [PackFiles].
func (p *packFileStorage) Exists(_ context.Context, packID string) (bool, error) {
	path, err := p.path(packID)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat pack: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Save implements [PackFiles]. The bytes go to a temporary file in the same
// folder that is renamed over the final name once fully written, so readers
// never observe a partial archive.
func (p *packFileStorage) Save(ctx context.Context, packID string, r io.Reader) (int64, error) {
	path, err := p.path(packID)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(p.dir, packID+".*.upload")
	if err != nil {
		return 0, fmt.Errorf("create temp pack: %w", err)
	}
	tmpName := tmp.Name()

	res, err := copier.Copy(r, tmp, copier.Options{CloseSink: true})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return res.Written, fmt.Errorf("write pack: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return res.Written, fmt.Errorf("store pack: %w", err)
	}

	return res.Written, nil
}
