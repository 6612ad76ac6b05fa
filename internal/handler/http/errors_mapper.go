package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pack-sync/internal/service"
	"github.com/MKhiriev/go-pack-sync/internal/store"
)

var errorStatusMap = map[error]int{
	ErrNotMultipart:    http.StatusBadRequest,
	ErrMissingPackPart: http.StatusBadRequest,
	ErrInvalidPackPath: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,

	store.ErrPackNotFound:  http.StatusNotFound,
	store.ErrInvalidPackID: http.StatusBadRequest,
}

func statusFromError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) int {
	status := statusFromError(err)
	http.Error(w, http.StatusText(status), status)
	return status
}
