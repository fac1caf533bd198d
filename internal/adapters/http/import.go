package httpadapter

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type importResponse struct {
	Success    bool                     `json:"success"`
	Candidates []domain.ImportCandidate `json:"candidates"`
	Summary    domain.ImportSummary     `json:"summary"`
}

type importErrorResponse struct {
	Error               string `json:"error"`
	ManualEntryPossible bool   `json:"manualEntryPossible"`
}

// importDDT runs the whole pipeline synchronously: the operator waits on the
// upload and gets the candidate list back in the same response.
func (rt *Router) importDDT(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, rt.uploadMaxBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rt.recordImport("too_large", nil, start)
			writeJSON(w, http.StatusRequestEntityTooLarge, importErrorResponse{
				Error:               "Il file supera la dimensione massima di 25 MB",
				ManualEntryPossible: true,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "campo multipart 'file' mancante"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rt.recordImport("too_large", nil, start)
			writeJSON(w, http.StatusRequestEntityTooLarge, importErrorResponse{
				Error:               "Il file supera la dimensione massima di 25 MB",
				ManualEntryPossible: true,
			})
			return
		}
		rt.writeError(w, r, err)
		return
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = http.DetectContentType(payload)
	}

	result, err := rt.importer.Import(r.Context(), fileHeader.Filename, payload, mediaType)
	if err != nil {
		switch {
		case domain.IsKind(err, domain.ErrUnsupportedMedia):
			rt.recordImport("unsupported", nil, start)
			writeJSON(w, http.StatusUnsupportedMediaType, importErrorResponse{
				Error:               "Formato file non supportato. Caricare un PDF o un'immagine JPEG/PNG",
				ManualEntryPossible: true,
			})
		case domain.IsKind(err, domain.ErrInvalidInput):
			rt.recordImport("invalid", nil, start)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			rt.recordImport("failed", nil, start)
			rt.logger.Error("import_ddt_failed",
				"request_id", requestIDFromContext(r.Context()),
				"filename", fileHeader.Filename,
				"error", err,
			)
			writeJSON(w, http.StatusInternalServerError, importErrorResponse{
				Error:               "Impossibile analizzare il documento. Inserimento manuale sempre disponibile",
				ManualEntryPossible: true,
			})
		}
		return
	}

	rt.recordImport("ok", result, start)
	writeJSON(w, http.StatusOK, importResponse{
		Success:    true,
		Candidates: result.Candidates,
		Summary:    result.Summary,
	})
}

func (rt *Router) recordImport(outcome string, result *domain.ImportResult, start time.Time) {
	if rt.metrics == nil {
		return
	}
	processed, pageErrors, created := 0, 0, 0
	if result != nil {
		processed = result.Summary.ProcessedPages
		pageErrors = result.Summary.PagesWithErrors
		for _, c := range result.Candidates {
			if c.Metadata != nil && c.Metadata.DestinatarioCreated {
				created++
			}
		}
	}
	rt.metrics.RecordImport("api", outcome, processed, pageErrors, created, time.Since(start))
}
