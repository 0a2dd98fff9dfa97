package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dosada05/fast-orienteering/models"
	"github.com/Dosada05/fast-orienteering/services"
)

type CheckpointHandler struct {
	eventService services.EventService
}

func NewCheckpointHandler(es services.EventService) *CheckpointHandler {
	return &CheckpointHandler{eventService: es}
}

// ListPublicCheckpoints godoc
// @Summary Checkpoints as seen by participants (without codes)
// @Tags race
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /race/checkpoints [get]
func (h *CheckpointHandler) ListPublicCheckpoints(w http.ResponseWriter, r *http.Request) {
	checkpoints, err := h.eventService.ListCheckpoints(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	public := make([]models.PublicCheckpoint, 0, len(checkpoints))
	for _, cp := range checkpoints {
		public = append(public, cp.Public())
	}
	respond(w, r, http.StatusOK, jsonResponse{"checkpoints": public})
}

// ListCheckpoints godoc
// @Summary All checkpoints with codes
// @Tags admin
// @Produce json
// @Security OrganizerToken
// @Success 200 {object} map[string]interface{}
// @Router /admin/checkpoints [get]
func (h *CheckpointHandler) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	checkpoints, err := h.eventService.ListCheckpoints(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"checkpoints": checkpoints})
}

// AddCheckpoint godoc
// @Summary Append a checkpoint
// @Description Coordinates accept "." or "," and an optional trailing degree sign.
// @Tags admin
// @Accept json
// @Produce json
// @Security OrganizerToken
// @Param input body services.AddCheckpointInput true "Checkpoint form"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/checkpoints [post]
func (h *CheckpointHandler) AddCheckpoint(w http.ResponseWriter, r *http.Request) {
	var input services.AddCheckpointInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cp, err := h.eventService.AddCheckpoint(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"checkpoint": cp})
}

// GetCheckpoint godoc
// @Summary One checkpoint by ID
// @Tags admin
// @Produce json
// @Security OrganizerToken
// @Param checkpointID path string true "Checkpoint UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/checkpoints/{checkpointID} [get]
func (h *CheckpointHandler) GetCheckpoint(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "checkpointID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cp, err := h.eventService.GetCheckpoint(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"checkpoint": cp})
}

func getUUIDFromURL(r *http.Request, paramName string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("missing %s in URL path", paramName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	return id, nil
}
