package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/fast-orienteering/services"
)

type AccessHandler struct {
	gate   *services.AccessGate
	tokens *services.TokenIssuer
	logger *slog.Logger
}

func NewAccessHandler(gate *services.AccessGate, tokens *services.TokenIssuer, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{gate: gate, tokens: tokens, logger: logger}
}

type accessRequest struct {
	PIN string `json:"pin"`
}

// RequestAccess godoc
// @Summary Enter organizer mode
// @Description Checks the organizer PIN and returns a bearer token for /api/admin routes.
// @Tags admin
// @Accept json
// @Produce json
// @Param input body accessRequest true "PIN"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /admin/access [post]
func (h *AccessHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	var input accessRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prompt := h.gate.Prompt(
		func() { h.logger.Info("organizer access granted", slog.String("remote", r.RemoteAddr)) },
		func() { h.logger.Warn("wrong organizer PIN", slog.String("remote", r.RemoteAddr)) },
	)
	// Неверный PIN оставляет диалог открытым, но по HTTP повторная попытка будет новым запросом.
	defer prompt.Cancel()

	if err := prompt.Submit(input.PIN); err != nil {
		if errors.Is(err, services.ErrAccessLocked) {
			h.logger.Warn("organizer access locked", slog.String("remote", r.RemoteAddr))
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue()
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, jsonResponse{
		"token":      token,
		"expires_at": expiresAt,
	})
}
