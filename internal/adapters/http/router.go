package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
	"github.com/ptrevisan/gestionale-trasporti/internal/observability/metrics"
)

// SpedizioniExporter produces the XLSX workbook for the shipment list.
type SpedizioniExporter interface {
	ExportSpedizioniXLSX(ctx context.Context, from, to string) ([]byte, error)
}

type Router struct {
	committenti ports.CommittenteRepository
	destinatari ports.DestinatarioRepository
	autisti     ports.AutistaRepository
	mezzi       ports.MezzoRepository
	utenti      ports.UtenteRepository

	spedizioni ports.SpedizioneService
	giri       ports.GiroService
	stats      ports.StatsService
	importer   ports.DDTImporter
	exporter   SpedizioniExporter

	uploadMaxBytes int64
	metrics        *metrics.HTTPServerMetrics
	logger         *slog.Logger
}

type RouterDeps struct {
	Committenti ports.CommittenteRepository
	Destinatari ports.DestinatarioRepository
	Autisti     ports.AutistaRepository
	Mezzi       ports.MezzoRepository
	Utenti      ports.UtenteRepository

	Spedizioni ports.SpedizioneService
	Giri       ports.GiroService
	Stats      ports.StatsService
	Importer   ports.DDTImporter
	Exporter   SpedizioniExporter

	UploadMaxBytes int64
	Metrics        *metrics.HTTPServerMetrics
	Logger         *slog.Logger
}

func NewRouter(deps RouterDeps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	uploadMax := deps.UploadMaxBytes
	if uploadMax <= 0 {
		uploadMax = 25 * 1024 * 1024
	}
	return &Router{
		committenti:    deps.Committenti,
		destinatari:    deps.Destinatari,
		autisti:        deps.Autisti,
		mezzi:          deps.Mezzi,
		utenti:         deps.Utenti,
		spedizioni:     deps.Spedizioni,
		giri:           deps.Giri,
		stats:          deps.Stats,
		importer:       deps.Importer,
		exporter:       deps.Exporter,
		uploadMaxBytes: uploadMax,
		metrics:        deps.Metrics,
		logger:         logger,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.healthz)

	mux.HandleFunc("POST /api/auth/login", rt.login)
	mux.HandleFunc("GET /api/stats", rt.dashboardStats)

	mux.HandleFunc("POST /api/import-ddt", rt.importDDT)

	mux.HandleFunc("GET /api/committenti", rt.listCommittenti)
	mux.HandleFunc("POST /api/committenti", rt.createCommittente)
	mux.HandleFunc("PUT /api/committenti/{id}", rt.updateCommittente)
	mux.HandleFunc("DELETE /api/committenti/{id}", rt.deleteCommittente)

	mux.HandleFunc("GET /api/destinatari", rt.listDestinatari)
	mux.HandleFunc("POST /api/destinatari", rt.createDestinatario)
	mux.HandleFunc("PUT /api/destinatari/{id}", rt.updateDestinatario)
	mux.HandleFunc("DELETE /api/destinatari/{id}", rt.deleteDestinatario)

	mux.HandleFunc("GET /api/autisti", rt.listAutisti)
	mux.HandleFunc("POST /api/autisti", rt.createAutista)
	mux.HandleFunc("PUT /api/autisti/{id}", rt.updateAutista)
	mux.HandleFunc("DELETE /api/autisti/{id}", rt.deleteAutista)

	mux.HandleFunc("GET /api/mezzi", rt.listMezzi)
	mux.HandleFunc("POST /api/mezzi", rt.createMezzo)
	mux.HandleFunc("PUT /api/mezzi/{id}", rt.updateMezzo)
	mux.HandleFunc("DELETE /api/mezzi/{id}", rt.deleteMezzo)

	mux.HandleFunc("POST /api/giri", rt.createGiro)
	mux.HandleFunc("GET /api/giri/by-date/{data}", rt.listGiriByData)
	mux.HandleFunc("GET /api/giri/{id}", rt.getGiro)
	mux.HandleFunc("DELETE /api/giri/{id}", rt.deleteGiro)

	mux.HandleFunc("GET /api/spedizioni", rt.listSpedizioni)
	mux.HandleFunc("POST /api/spedizioni", rt.createSpedizione)
	mux.HandleFunc("GET /api/spedizioni/export", rt.exportSpedizioni)
	mux.HandleFunc("PUT /api/spedizioni/{id}/assign", rt.assignSpedizione)
	mux.HandleFunc("PATCH /api/spedizioni/{id}/stato", rt.updateSpedizioneStato)

	var handler http.Handler = mux
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware("api", handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.stats.Stats(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		rt.logger.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
