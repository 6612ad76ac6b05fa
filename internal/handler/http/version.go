package http

import (
	"net/http"

	"github.com/MKhiriev/go-pack-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteText(w, http.StatusOK, h.services.AppInfoService.GetAppVersion(r.Context()))
}
