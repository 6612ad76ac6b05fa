package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/copier"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/utils"
)

// Wire constants of the upload contract.
const (
	UploadFormField   = "resource-pack"
	UploadContentType = "application/x-zip-compressed"
	PackExtension     = ".zip"

	downloadPath = "get-resource-pack/"
	uploadPath   = "upload-resource-pack/"
)

type httpPackHost struct {
	client *utils.HTTPClient
	prefix string

	logger *logger.Logger
}

// NewHTTPPackHost constructs the HTTP implementation of [PackHost].
// It normalises remoteCfg.URLPrefix (adding a scheme when missing and a
// trailing slash) and configures the request timeout.
//
// Returns an error wrapping [ErrMalformedURL] if the prefix is empty or
// cannot be parsed as an absolute URL.
func NewHTTPPackHost(remoteCfg config.Remote, logger *logger.Logger) (PackHost, error) {
	prefix, err := NormalizePrefix(remoteCfg.URLPrefix)
	if err != nil {
		return nil, err
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(remoteCfg.Timeout())

	return &httpPackHost{client: client, prefix: prefix, logger: logger}, nil
}

// NormalizePrefix returns raw as an absolute URL ending in "/".
func NormalizePrefix(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty prefix", ErrMalformedURL)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: prefix must include host and scheme", ErrMalformedURL)
	}

	s := u.String()
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s, nil
}

// PackURL implements [PackHost].
func (h *httpPackHost) PackURL(packID string) string {
	return h.prefix + downloadPath + url.PathEscape(packID)
}

func (h *httpPackHost) uploadURL(packID string) string {
	return h.prefix + uploadPath + url.PathEscape(packID)
}

// Fetch implements [PackHost]. The response body is not buffered; for GET it
// streams straight from the connection.
func (h *httpPackHost) Fetch(ctx context.Context, packID string, withBody bool) (*FetchResult, error) {
	req := h.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	method := http.MethodHead
	if withBody {
		method = http.MethodGet
	}

	start := time.Now()
	resp, err := req.Execute(method, h.PackURL(packID))
	if err != nil {
		return nil, mapTransportError(strings.ToLower(method)+" pack", err)
	}

	body := resp.RawBody()
	if body == nil {
		body = http.NoBody
	}

	contentLength := int64(-1)
	if raw := resp.RawResponse; raw != nil {
		contentLength = raw.ContentLength
	}

	logger.FromContext(ctx).Debug().
		Str("method", method).
		Str("pack_id", packID).
		Int("status", resp.StatusCode()).
		Int64("content_length", contentLength).
		Dur("duration", time.Since(start)).
		Msg("pack host responded")

	return &FetchResult{
		StatusCode:    resp.StatusCode(),
		ContentLength: contentLength,
		Body:          body,
	}, nil
}

// Upload implements [PackHost]. The multipart body is produced through a
// pipe: the part header, the pack bytes (copied with the sink left open) and
// the trailing boundary are written while the request is in flight.
func (h *httpPackHost) Upload(
	ctx context.Context, packID string, pack io.Reader, size int64, progress copier.ProgressFunc,
) (*UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	if err := mw.SetBoundary(newBoundary()); err != nil {
		closeReader(pack)
		return nil, fmt.Errorf("set multipart boundary: %w", err)
	}

	type copyResult struct {
		written int64
		err     error
	}
	copied := make(chan copyResult, 1)

	go func() {
		part, err := mw.CreatePart(packPartHeader(packID))
		if err != nil {
			closeReader(pack)
			pw.CloseWithError(err)
			copied <- copyResult{err: fmt.Errorf("write part header: %w", err)}
			return
		}

		res, err := copier.Copy(pack, part, copier.Options{
			CloseSink:   false,
			Progress:    progress,
			TotalLength: size,
		})
		if err != nil {
			pw.CloseWithError(err)
			copied <- copyResult{written: res.Written, err: err}
			return
		}

		err = mw.Close()
		pw.CloseWithError(err)
		copied <- copyResult{written: res.Written, err: err}
	}()

	resp, postErr := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", mw.FormDataContentType()).
		SetBody(pr).
		Post(h.uploadURL(packID))

	// Unblocks the writer if the request ended before the body was consumed.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	cr := <-copied

	if cr.err != nil && !errors.Is(cr.err, io.ErrClosedPipe) {
		return nil, fmt.Errorf("upload pack: %w: %w", ErrPackRead, cr.err)
	}
	if postErr != nil {
		return nil, mapTransportError("upload pack", postErr)
	}

	logger.FromContext(ctx).Debug().
		Str("pack_id", packID).
		Int("status", resp.StatusCode()).
		Int64("written", cr.written).
		Msg("pack upload finished")

	return &UploadResult{StatusCode: resp.StatusCode(), Written: cr.written}, nil
}

func packPartHeader(packID string) textproto.MIMEHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(UploadFormField), escapeQuotes(packID+PackExtension)))
	header.Set("Content-Type", UploadContentType)
	return header
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func newBoundary() string {
	return "packsync-" + uuid.NewString()
}

func closeReader(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}
