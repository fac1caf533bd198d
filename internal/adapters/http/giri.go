package httpadapter

import (
	"net/http"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

func (rt *Router) createGiro(w http.ResponseWriter, r *http.Request) {
	var g domain.Giro
	if err := decodeJSON(r, &g); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	created, err := rt.giri.Create(r.Context(), g)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (rt *Router) getGiro(w http.ResponseWriter, r *http.Request) {
	giro, err := rt.giri.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, giro)
}

func (rt *Router) listGiriByData(w http.ResponseWriter, r *http.Request) {
	list, err := rt.giri.ListByData(r.Context(), r.PathValue("data"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.GiroDettaglio{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) deleteGiro(w http.ResponseWriter, r *http.Request) {
	if err := rt.giri.Delete(r.Context(), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
