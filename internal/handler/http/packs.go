package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pack-sync/internal/copier"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/utils"
)

const (
	packFormField   = "resource-pack"
	packContentType = "application/zip"
)

func packID(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPackPath, err)
	}
	return id, nil
}

func (h *Handler) getPack(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := packID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pack, size, err := h.services.PackService.Open(r.Context(), id)
	if err != nil {
		if status := writeError(w, err); status == http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.getPack").Str("pack_id", id).Msg("error opening pack")
		}
		return
	}
	defer pack.Close()

	w.Header().Set("Content-Type", packContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err = copier.Copy(pack, w, copier.Options{}); err != nil {
		log.Err(err).Str("func", "*Handler.getPack").Str("pack_id", id).Msg("error streaming pack")
	}
}

func (h *Handler) headPack(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := packID(r)
	if err != nil {
		w.WriteHeader(statusFromError(err))
		return
	}

	size, err := h.services.PackService.Stat(r.Context(), id)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.headPack").Str("pack_id", id).Msg("error checking pack")
		}
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", packContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
}

// uploadPack stores the first part named "resource-pack". Other parts are
// skipped.
func (h *Handler) uploadPack(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := packID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, fmt.Errorf("%w: %w", ErrNotMultipart, err))
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeError(w, ErrMissingPackPart)
			return
		}
		if err != nil {
			log.Err(err).Str("func", "*Handler.uploadPack").Msg("error reading multipart body")
			writeError(w, fmt.Errorf("%w: %w", ErrNotMultipart, err))
			return
		}

		if part.FormName() != packFormField {
			_ = part.Close()
			continue
		}

		written, err := h.services.PackService.Upload(r.Context(), id, part.FileName(), part)
		_ = part.Close()
		if err != nil {
			status := writeError(w, err)
			log.Err(err).Str("func", "*Handler.uploadPack").Str("pack_id", id).Int("status", status).Msg("error storing pack")
			return
		}

		_, _ = utils.WriteTextf(w, http.StatusOK, "stored %d bytes", written)
		return
	}
}
