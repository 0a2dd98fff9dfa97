package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/fast-orienteering/services"
)

type TokenParser interface {
	Parse(tokenString string) (*services.OrganizerClaims, error)
}

// RequireOrganizer пропускает запрос только с действительным токеном организатора
// (Authorization: Bearer <token>).
func RequireOrganizer(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "organizer token required")
				return
			}
			if _, err := tokens.Parse(tokenString); err != nil {
				if errors.Is(err, services.ErrForbiddenOperation) {
					writeError(w, http.StatusForbidden, err.Error())
					return
				}
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":` + quote(message) + "}\n"))
}
