package httpadapter

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// login is the single-credential office check. Credentials live in the utenti
// table, seeded at schema bootstrap.
func (rt *Router) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username e password obbligatori"})
		return
	}

	utente, err := rt.utenti.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenziali non valide"})
			return
		}
		rt.writeError(w, r, err)
		return
	}
	if subtle.ConstantTimeCompare([]byte(utente.Password), []byte(req.Password)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenziali non valide"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    utente,
	})
}
