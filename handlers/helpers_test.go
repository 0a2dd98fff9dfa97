package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/Dosada05/fast-orienteering/repositories"
	"github.com/Dosada05/fast-orienteering/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	busy := fmt.Errorf("%w: %w", services.ErrStorageFailed, &repositories.StorageError{
		Op:  "write",
		Key: repositories.KeyCheckpoints,
		Err: fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, sqlite3.Error{Code: sqlite3.ErrBusy}),
	})
	diskFull := fmt.Errorf("%w: %w", services.ErrStorageFailed, &repositories.StorageError{
		Op:  "write",
		Key: repositories.KeyRace,
		Err: errors.New("disk full"),
	})

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", services.ErrCoordinatesInvalid, http.StatusUnprocessableEntity, "invalid coordinates"},
		{"no race", services.ErrRaceNotFound, http.StatusNotFound, "race not found"},
		{"race exists", services.ErrRaceAlreadyExists, http.StatusConflict, "race already exists"},
		{"wrong PIN", services.ErrAccessDenied, http.StatusUnauthorized, "wrong PIN"},
		{"locked", services.ErrAccessLocked, http.StatusTooManyRequests, services.ErrAccessLocked.Error()},
		{"store busy", busy, http.StatusServiceUnavailable, repositories.ErrStoreUnavailable.Error()},
		{"store failed", diskFull, http.StatusInternalServerError, services.ErrStorageFailed.Error()},
		{"no sinks", services.ErrNoExportSinks, http.StatusServiceUnavailable, services.ErrNoExportSinks.Error()},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "the server encountered a problem and could not process your request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/checkpoints", nil)
			mapServiceErrorToHTTP(rec, req, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tc.message {
				t.Fatalf("error = %v, want %q", body["error"], tc.message)
			}
		})
	}
}
