package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Dosada05/fast-orienteering/live"
	"github.com/Dosada05/fast-orienteering/models"
)

type SystemHandler struct {
	db  *sql.DB
	hub *live.Hub
}

func NewSystemHandler(db *sql.DB, hub *live.Hub) *SystemHandler {
	return &SystemHandler{db: db, hub: hub}
}

// Health отвечает на /healthz вне префикса /api: проверяет базу и сообщает число
// подключённых live-клиентов.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{
		"status":       "ok",
		"live_clients": h.hub.ClientCount(),
	})
}

// Version godoc
// @Summary Application version
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /version [get]
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, jsonResponse{"app": models.AppInfo{
		Version:     models.AppVersion,
		ReleaseDate: models.AppReleaseDate,
	}})
}
