// Package copier streams bytes from a source to a sink, optionally
// computing a SHA-1 digest of the source bytes and reporting progress at
// every whole-megabyte boundary.
package copier

import (
	"crypto"
	_ "crypto/sha1" // registers crypto.SHA1
	"errors"
	"fmt"
	"io"
)

const (
	// ChunkSize is the size of a single read from the source.
	ChunkSize = 100_000

	// ProgressStep is the byte boundary at which progress is reported.
	ProgressStep = 1_000_000
)

// ErrDigestUnavailable is returned when the digest algorithm is not linked
// into the binary. It is a capability failure, not an I/O failure.
var ErrDigestUnavailable = errors.New("sha-1 digest is not available")

var digestAlgorithm = crypto.SHA1

// SetDigestHash replaces the digest algorithm and returns a function that
// restores the previous one. It must not be called while a Copy is running.
// Tests use an unlinked hash such as crypto.MD4 to reach the
// [ErrDigestUnavailable] paths.
func SetDigestHash(h crypto.Hash) (restore func()) {
	prev := digestAlgorithm
	digestAlgorithm = h
	return func() { digestAlgorithm = prev }
}

// ProgressFunc receives the transferred share of the total length as a
// percentage (0..100, possibly above 100 if the length was understated).
type ProgressFunc func(percent float64)

// Options controls a single [Copy].
type Options struct {
	// Digest enables SHA-1 accumulation over every byte read.
	Digest bool

	// CloseSink closes the sink after the copy when it implements io.Closer.
	// Multipart uploads keep it open so the trailing boundary can follow.
	CloseSink bool

	// Progress, when set together with a positive TotalLength, is called each
	// time the cumulative byte count crosses a multiple of ProgressStep.
	Progress ProgressFunc

	// TotalLength is the expected number of bytes; zero or negative means unknown.
	TotalLength int64
}

// Result describes a finished copy.
type Result struct {
	// Written is the number of bytes read from the source and written to the sink.
	Written int64

	// Digest is the SHA-1 of the source bytes; nil unless Options.Digest was set.
	Digest []byte
}

type flusher interface {
	Flush() error
}

// Copy reads src in ChunkSize chunks until EOF, writing each chunk to dst.
//
// The source is always closed when it implements io.Closer, and the sink is
// always flushed when it has a Flush() error method. The sink is closed only
// if opts.CloseSink is set. Errors from the copy take precedence over errors
// from closing.
func Copy(src io.Reader, dst io.Writer, opts Options) (res Result, err error) {
	defer func() {
		err = errors.Join(err, finish(src, dst, opts.CloseSink))
	}()

	var h interface {
		io.Writer
		Sum([]byte) []byte
	}
	if opts.Digest {
		if !digestAlgorithm.Available() {
			return res, ErrDigestUnavailable
		}
		h = digestAlgorithm.New()
	}

	buf := make([]byte, ChunkSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if h != nil {
				_, _ = h.Write(buf[:n])
			}
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return res, fmt.Errorf("write chunk: %w", writeErr)
			}

			before := res.Written / ProgressStep
			res.Written += int64(n)
			if opts.Progress != nil && opts.TotalLength > 0 && res.Written/ProgressStep != before {
				opts.Progress(100 * float64(res.Written) / float64(opts.TotalLength))
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return res, fmt.Errorf("read chunk: %w", readErr)
		}
	}

	if h != nil {
		res.Digest = h.Sum(nil)
	}

	return res, nil
}

func finish(src io.Reader, dst io.Writer, closeSink bool) error {
	var errs []error

	if c, ok := src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close source: %w", err))
		}
	}
	if f, ok := dst.(flusher); ok {
		if err := f.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush sink: %w", err))
		}
	}
	if closeSink {
		if c, ok := dst.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close sink: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

// FormatPercent renders a progress percentage with one decimal place.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Digest streams src to io.Discard with digesting enabled and returns the
// SHA-1 of its bytes. src is closed.
func Digest(src io.Reader) ([]byte, error) {
	res, err := Copy(src, io.Discard, Options{Digest: true})
	if err != nil {
		return nil, err
	}
	return res.Digest, nil
}
