package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFileStorage_SaveOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPackFileStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	n, err := s.Save(ctx, "abc", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	ok, err := s.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, size, err := s.Open(ctx, "abc")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, "hello", string(body))

	_, err = os.Stat(filepath.Join(dir, "abc.zip"))
	assert.NoError(t, err)
}

func TestPackFileStorage_SaveReplaces(t *testing.T) {
	s, err := NewPackFileStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = s.Save(ctx, "abc", strings.NewReader("first version"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "abc", strings.NewReader("v2"))
	require.NoError(t, err)

	rc, size, err := s.Open(ctx, "abc")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)

	assert.Equal(t, int64(2), size)
	assert.Equal(t, "v2", string(body))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestPackFileStorage_FailedSaveKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPackFileStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = s.Save(ctx, "abc", strings.NewReader("hello"))
	require.NoError(t, err)

	_, err = s.Save(ctx, "abc", brokenReader{})
	require.Error(t, err)

	rc, _, err := s.Open(ctx, "abc")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "hello", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload file must be removed")
}

func TestPackFileStorage_Missing(t *testing.T) {
	s, err := NewPackFileStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	ok, err := s.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Open(ctx, "nope")
	assert.ErrorIs(t, err, ErrPackNotFound)
}

func TestPackFileStorage_InvalidIDs(t *testing.T) {
	s, err := NewPackFileStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, id := range []string{"", ".", "..", "../etc", `a\b`, "a/b"} {
		_, err := s.Save(ctx, id, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPackID, "id=%q", id)

		_, _, err = s.Open(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidPackID, "id=%q", id)
	}
}
