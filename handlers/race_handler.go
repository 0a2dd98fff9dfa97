package handlers

import (
	"net/http"

	"github.com/Dosada05/fast-orienteering/services"
)

type RaceHandler struct {
	eventService services.EventService
}

func NewRaceHandler(es services.EventService) *RaceHandler {
	return &RaceHandler{eventService: es}
}

// GetRace godoc
// @Summary Current race
// @Tags race
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /race [get]
func (h *RaceHandler) GetRace(w http.ResponseWriter, r *http.Request) {
	race, err := h.eventService.GetRace(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"race": race})
}

// CreateRace godoc
// @Summary Create the race
// @Tags admin
// @Accept json
// @Produce json
// @Security OrganizerToken
// @Param input body services.CreateRaceInput true "Race name and DD-MM-YYYY date"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/race [post]
func (h *RaceHandler) CreateRace(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRaceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.eventService.CreateRace(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"race": race})
}

// DeleteRace godoc
// @Summary Delete the race and all checkpoints
// @Tags admin
// @Security OrganizerToken
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/race [delete]
func (h *RaceHandler) DeleteRace(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.DeleteRace(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
