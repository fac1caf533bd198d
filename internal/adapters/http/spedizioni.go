package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

func (rt *Router) listSpedizioni(w http.ResponseWriter, r *http.Request) {
	list, err := rt.spedizioni.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.SpedizioneDettaglio{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) createSpedizione(w http.ResponseWriter, r *http.Request) {
	var ins domain.NuovaSpedizione
	if err := decodeJSON(r, &ins); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	created, err := rt.spedizioni.Create(r.Context(), ins)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSpedizioneSaved("api", "manuale")
	}
	writeJSON(w, http.StatusCreated, created)
}

func (rt *Router) assignSpedizione(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GiroID *string `json:"giroId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	updated, err := rt.spedizioni.Assign(r.Context(), r.PathValue("id"), req.GiroID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (rt *Router) updateSpedizioneStato(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stato domain.SpedizioneStato `json:"stato"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "json non valido"})
		return
	}
	updated, err := rt.spedizioni.UpdateStato(r.Context(), r.PathValue("id"), req.Stato)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (rt *Router) exportSpedizioni(w http.ResponseWriter, r *http.Request) {
	if rt.exporter == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "export non disponibile"})
		return
	}
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	workbook, err := rt.exporter.ExportSpedizioniXLSX(r.Context(), from, to)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="spedizioni.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(workbook)))
	_, _ = w.Write(workbook)
}
