// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package copier

import (
	"bufio"
	"bytes"
	"crypto"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingCloser records Close calls on either end of a copy.
type trackingCloser struct {
	io.Reader
	io.Writer
	closed int
}

func (c *trackingCloser) Close() error {
	c.closed++
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

// ── Copy ─────────────────────────────────────────────────────────────────────

func TestCopy_DigestOfHello(t *testing.T) {
	var sink bytes.Buffer

	res, err := Copy(strings.NewReader("hello"), &sink, Options{Digest: true})
	require.NoError(t, err)

	assert.Equal(t, "hello", sink.String())
	assert.Equal(t, int64(5), res.Written)
	assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", hex.EncodeToString(res.Digest))
}

func TestCopy_NoDigestWhenDisabled(t *testing.T) {
	res, err := Copy(strings.NewReader("hello"), io.Discard, Options{})
	require.NoError(t, err)
	assert.Nil(t, res.Digest)
}

func TestCopy_ProgressAtMegabyteBoundaries(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, 2_500_000)
	var got []string

	_, err := Copy(bytes.NewReader(payload), io.Discard, Options{
		TotalLength: int64(len(payload)),
		Progress:    func(p float64) { got = append(got, FormatPercent(p)) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"40.0%", "80.0%"}, got)
}

func TestCopy_NoProgressWhenLengthUnknown(t *testing.T) {
	calls := 0
	_, err := Copy(bytes.NewReader(make([]byte, 3_000_000)), io.Discard, Options{
		TotalLength: -1,
		Progress:    func(float64) { calls++ },
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestCopy_ClosesSourceAlways_SinkOnlyOnRequest(t *testing.T) {
	tests := []struct {
		name       string
		closeSink  bool
		sinkClosed int
	}{
		{name: "keep sink open", closeSink: false, sinkClosed: 0},
		{name: "close sink", closeSink: true, sinkClosed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &trackingCloser{Reader: strings.NewReader("abc")}
			dst := &trackingCloser{Writer: io.Discard}

			_, err := Copy(src, dst, Options{CloseSink: tt.closeSink})
			require.NoError(t, err)

			assert.Equal(t, 1, src.closed)
			assert.Equal(t, tt.sinkClosed, dst.closed)
		})
	}
}

func TestCopy_FlushesBufferedSink(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriterSize(&out, 4096)

	_, err := Copy(strings.NewReader("buffered"), w, Options{})
	require.NoError(t, err)
	assert.Equal(t, "buffered", out.String())
}

func TestCopy_ReadErrorStillClosesSource(t *testing.T) {
	src := &trackingCloser{Reader: failingReader{}}

	_, err := Copy(src, io.Discard, Options{Digest: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Equal(t, 1, src.closed)
}

func TestCopy_DigestUnavailable(t *testing.T) {
	t.Cleanup(SetDigestHash(crypto.MD4)) // never linked into this binary

	src := &trackingCloser{Reader: strings.NewReader("hello")}
	_, err := Copy(src, io.Discard, Options{Digest: true})

	assert.ErrorIs(t, err, ErrDigestUnavailable)
	assert.Equal(t, 1, src.closed)
}

// ── Digest ───────────────────────────────────────────────────────────────────

func TestDigest_EmptyInput(t *testing.T) {
	sum, err := Digest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", hex.EncodeToString(sum))
}
