package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/mock"
	"github.com/MKhiriev/go-pack-sync/internal/service"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

// ── Helpers ─────────────────────────────────────────────────────────────────

func newMockedHandler(t *testing.T, maxUpload int64) (*Handler, *mock.MockPackService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	packs := mock.NewMockPackService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3").AnyTimes()

	h := NewHandler(&service.Services{PackService: packs, AppInfoService: appInfo},
		config.Server{MaxUploadSize: maxUpload}, logger.Nop())
	return h, packs
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// ── GET / HEAD ──────────────────────────────────────────────────────────────

func TestGetPack_StreamsBody(t *testing.T) {
	h, packs := newMockedHandler(t, 0)
	packs.EXPECT().Open(gomock.Any(), "abc").Return(io.NopCloser(strings.NewReader("hello")), int64(5), nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/get-resource-pack/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Equal(t, packContentType, rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestGetPack_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: store.ErrPackNotFound, want: http.StatusNotFound},
		{name: "invalid id", err: service.ErrInvalidDataProvided, want: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, packs := newMockedHandler(t, 0)
			packs.EXPECT().Open(gomock.Any(), "abc").Return(nil, int64(0), tt.err)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/get-resource-pack/abc", nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHeadPack(t *testing.T) {
	h, packs := newMockedHandler(t, 0)
	gomock.InOrder(
		packs.EXPECT().Stat(gomock.Any(), "abc").Return(int64(5), nil),
		packs.EXPECT().Stat(gomock.Any(), "missing").Return(int64(0), store.ErrPackNotFound),
	)

	rec := serve(h, httptest.NewRequest(http.MethodHead, "/get-resource-pack/abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Empty(t, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodHead, "/get-resource-pack/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownMethodIsNotFound(t *testing.T) {
	h, _ := newMockedHandler(t, 0)

	rec := serve(h, httptest.NewRequest(http.MethodDelete, "/get-resource-pack/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ── POST ────────────────────────────────────────────────────────────────────

func TestUploadPack_StoresPart(t *testing.T) {
	h, packs := newMockedHandler(t, 0)

	var stored string
	packs.EXPECT().Upload(gomock.Any(), "abc", "abc.zip", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, r io.Reader) (int64, error) {
			data, err := io.ReadAll(r)
			stored = string(data)
			return int64(len(data)), err
		})

	body, contentType := multipartBody(t, packFormField, "abc.zip", "hello")
	req := httptest.NewRequest(http.MethodPost, "/upload-resource-pack/abc", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", stored)
	assert.Equal(t, "stored 5 bytes", rec.Body.String())
}

func TestUploadPack_MissingPart(t *testing.T) {
	h, _ := newMockedHandler(t, 0)

	body, contentType := multipartBody(t, "something-else", "abc.zip", "hello")
	req := httptest.NewRequest(http.MethodPost, "/upload-resource-pack/abc", body)
	req.Header.Set("Content-Type", contentType)

	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestUploadPack_NotMultipart(t *testing.T) {
	h, _ := newMockedHandler(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/upload-resource-pack/abc", strings.NewReader("hello"))
	req.Header.Set("Content-Type", "application/zip")

	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestUploadPack_TooLarge(t *testing.T) {
	h, packs := newMockedHandler(t, 1024)
	packs.EXPECT().Upload(gomock.Any(), "abc", "abc.zip", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, r io.Reader) (int64, error) {
			return io.Copy(io.Discard, r)
		}).AnyTimes()

	body, contentType := multipartBody(t, packFormField, "abc.zip", strings.Repeat("x", 4096))
	req := httptest.NewRequest(http.MethodPost, "/upload-resource-pack/abc", body)
	req.Header.Set("Content-Type", contentType)

	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(h, req).Code)
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	h, _ := newMockedHandler(t, 0)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
}

// ── Round trip with the sync client ─────────────────────────────────────────

func TestPackHost_RoundTripWithClient(t *testing.T) {
	files, err := store.NewPackFileStorage(t.TempDir())
	require.NoError(t, err)
	services, err := service.NewServices(files, models.NewAppBuildInfo("test", "", ""), logger.Nop())
	require.NoError(t, err)

	h := NewHandler(services, config.Server{MaxUploadSize: 1 << 20}, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	client, err := adapter.NewHTTPPackHost(config.Remote{URLPrefix: srv.URL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	res, err := client.Fetch(ctx, "abc", false)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	content := strings.Repeat("pack-bytes", 1000)
	up, err := client.Upload(ctx, "abc", io.NopCloser(strings.NewReader(content)), int64(len(content)), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, up.StatusCode)

	res, err = client.Fetch(ctx, "abc", false)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(len(content)), res.ContentLength)

	res, err = client.Fetch(ctx, "abc", true)
	require.NoError(t, err)
	data, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
