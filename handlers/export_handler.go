package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/fast-orienteering/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// DownloadExport godoc
// @Summary Download the race as a JSON file
// @Tags admin
// @Produce json
// @Security OrganizerToken
// @Success 200 {object} models.EventExport
// @Failure 404 {object} map[string]string
// @Router /admin/export [get]
func (h *ExportHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	export, err := h.exportService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	headers := http.Header{}
	headers.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="race-%s.json"`, export.Race.ID))
	if err := writeJSON(w, http.StatusOK, export, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportEvent godoc
// @Summary Push the race to the configured export destinations
// @Tags admin
// @Produce json
// @Security OrganizerToken
// @Success 200 {object} models.ExportResult
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /admin/export [post]
func (h *ExportHandler) ExportEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.exportService.ExportEvent(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"export": result})
}
