package httpadapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

func (rt *Router) listCommittenti(w http.ResponseWriter, r *http.Request) {
	list, err := rt.committenti.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Committente{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) createCommittente(w http.ResponseWriter, r *http.Request) {
	var c domain.Committente
	if err := decodeJSON(r, &c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(c.RagioneSociale) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ragioneSociale obbligatoria"})
		return
	}
	c.ID = uuid.NewString()
	if err := rt.committenti.Create(r.Context(), &c); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (rt *Router) updateCommittente(w http.ResponseWriter, r *http.Request) {
	var c domain.Committente
	if err := decodeJSON(r, &c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(c.RagioneSociale) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ragioneSociale obbligatoria"})
		return
	}
	c.ID = r.PathValue("id")
	if err := rt.committenti.Update(r.Context(), &c); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) deleteCommittente(w http.ResponseWriter, r *http.Request) {
	if err := rt.committenti.Delete(r.Context(), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) listDestinatari(w http.ResponseWriter, r *http.Request) {
	list, err := rt.destinatari.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Destinatario{}
	}
	writeJSON(w, http.StatusOK, list)
}

func validateDestinatario(d domain.Destinatario) error {
	for field, value := range map[string]string{
		"ragioneSociale": d.RagioneSociale,
		"indirizzo":      d.Indirizzo,
		"cap":            d.CAP,
		"citta":          d.Citta,
		"provincia":      d.Provincia,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s obbligatorio", field)
		}
	}
	return nil
}

func (rt *Router) createDestinatario(w http.ResponseWriter, r *http.Request) {
	var d domain.Destinatario
	if err := decodeJSON(r, &d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if err := validateDestinatario(d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d.ID = uuid.NewString()
	if err := rt.destinatari.Create(r.Context(), &d); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (rt *Router) updateDestinatario(w http.ResponseWriter, r *http.Request) {
	var d domain.Destinatario
	if err := decodeJSON(r, &d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if err := validateDestinatario(d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d.ID = r.PathValue("id")
	if err := rt.destinatari.Update(r.Context(), &d); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (rt *Router) deleteDestinatario(w http.ResponseWriter, r *http.Request) {
	if err := rt.destinatari.Delete(r.Context(), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) listAutisti(w http.ResponseWriter, r *http.Request) {
	list, err := rt.autisti.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Autista{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) createAutista(w http.ResponseWriter, r *http.Request) {
	var a domain.Autista
	if err := decodeJSON(r, &a); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(a.Nome) == "" || strings.TrimSpace(a.Cognome) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nome e cognome obbligatori"})
		return
	}
	a.ID = uuid.NewString()
	if err := rt.autisti.Create(r.Context(), &a); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (rt *Router) updateAutista(w http.ResponseWriter, r *http.Request) {
	var a domain.Autista
	if err := decodeJSON(r, &a); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(a.Nome) == "" || strings.TrimSpace(a.Cognome) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nome e cognome obbligatori"})
		return
	}
	a.ID = r.PathValue("id")
	if err := rt.autisti.Update(r.Context(), &a); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (rt *Router) deleteAutista(w http.ResponseWriter, r *http.Request) {
	if err := rt.autisti.Delete(r.Context(), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) listMezzi(w http.ResponseWriter, r *http.Request) {
	list, err := rt.mezzi.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Mezzo{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) createMezzo(w http.ResponseWriter, r *http.Request) {
	var m domain.Mezzo
	if err := decodeJSON(r, &m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(m.Targa) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "targa obbligatoria"})
		return
	}
	m.ID = uuid.NewString()
	if err := rt.mezzi.Create(r.Context(), &m); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (rt *Router) updateMezzo(w http.ResponseWriter, r *http.Request) {
	var m domain.Mezzo
	if err := decodeJSON(r, &m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	if strings.TrimSpace(m.Targa) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "targa obbligatoria"})
		return
	}
	m.ID = r.PathValue("id")
	if err := rt.mezzi.Update(r.Context(), &m); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (rt *Router) deleteMezzo(w http.ResponseWriter, r *http.Request) {
	if err := rt.mezzi.Delete(r.Context(), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
