package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// SpedizioneCreator is the one slice of the shipment service the review
// workflow needs.
type SpedizioneCreator interface {
	Create(ctx context.Context, ins domain.NuovaSpedizione) (*domain.Spedizione, error)
}

// ReviewSession holds the operator-side working set of import candidates.
// It is a client-held, server-validated value: every confirm re-runs the
// same eligibility checks and goes through the ordinary shipment-creation
// contract, so retries stay naturally idempotent.
type ReviewSession struct {
	creator    SpedizioneCreator
	candidates []domain.ImportCandidate
}

func NewReviewSession(creator SpedizioneCreator, candidates []domain.ImportCandidate) *ReviewSession {
	working := make([]domain.ImportCandidate, len(candidates))
	copy(working, candidates)
	return &ReviewSession{creator: creator, candidates: working}
}

// Candidates returns a snapshot of the working set in page order.
func (s *ReviewSession) Candidates() []domain.ImportCandidate {
	out := make([]domain.ImportCandidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Confirmable reports whether a candidate can be committed without manual
// editing: extracted data present, no unresolved extraction failure, not
// already saved, and both anagrafica ids resolved. A candidate whose previous
// commit attempt failed stays confirmable; the workflow never guesses a
// missing mapping.
func Confirmable(c domain.ImportCandidate) bool {
	if c.Status == domain.CandidateSaved || c.Data == nil {
		return false
	}
	if c.Status == domain.CandidatePending && c.Error != "" {
		return false
	}
	return c.Data.CommittenteID != "" && c.Data.DestinatarioID != ""
}

// ConfirmOne commits a single candidate through the shipment-creation
// contract. Confirming an already saved candidate is a no-op. On failure the
// candidate moves to the retryable error status and keeps the failure message.
func (s *ReviewSession) ConfirmOne(ctx context.Context, pageNumber int) error {
	idx := s.indexOf(pageNumber)
	if idx < 0 {
		return domain.WrapError(domain.ErrNotFound, "confirm candidate", fmt.Errorf("page %d not in working set", pageNumber))
	}
	candidate := &s.candidates[idx]
	if candidate.Status == domain.CandidateSaved {
		return nil
	}
	if !Confirmable(*candidate) {
		return domain.WrapError(domain.ErrInvalidInput, "confirm candidate",
			errors.New("candidato non confermabile: completare i dati mancanti manualmente"))
	}

	ins := buildNuovaSpedizione(*candidate)
	if _, err := s.creator.Create(ctx, ins); err != nil {
		candidate.Status = domain.CandidateError
		candidate.Error = err.Error()
		return err
	}
	candidate.Status = domain.CandidateSaved
	candidate.Error = ""
	return nil
}

// ConfirmAll attempts every currently confirmable candidate independently
// and reports how many were saved. One candidate's failure never blocks the
// rest.
func (s *ReviewSession) ConfirmAll(ctx context.Context) int {
	saved := 0
	for _, pageNumber := range s.confirmablePages() {
		if err := s.ConfirmOne(ctx, pageNumber); err == nil {
			saved++
		}
	}
	return saved
}

// Discard removes a candidate from the working set. Nothing persisted is
// touched: a saved candidate's shipment already exists independently.
func (s *ReviewSession) Discard(pageNumber int) bool {
	idx := s.indexOf(pageNumber)
	if idx < 0 {
		return false
	}
	s.candidates = append(s.candidates[:idx], s.candidates[idx+1:]...)
	return true
}

// EditPayload exports a candidate's best-known values for the manual
// shipment form.
func (s *ReviewSession) EditPayload(pageNumber int) (domain.NuovaSpedizione, bool) {
	idx := s.indexOf(pageNumber)
	if idx < 0 || s.candidates[idx].Data == nil {
		return domain.NuovaSpedizione{}, false
	}
	return buildNuovaSpedizione(s.candidates[idx]), true
}

func (s *ReviewSession) indexOf(pageNumber int) int {
	for i := range s.candidates {
		if s.candidates[i].PageNumber == pageNumber {
			return i
		}
	}
	return -1
}

func (s *ReviewSession) confirmablePages() []int {
	pages := make([]int, 0, len(s.candidates))
	for _, c := range s.candidates {
		if Confirmable(c) {
			pages = append(pages, c.PageNumber)
		}
	}
	return pages
}

func buildNuovaSpedizione(c domain.ImportCandidate) domain.NuovaSpedizione {
	data := c.Data

	numeroDDT := strings.TrimSpace(data.NumeroDDT)
	if numeroDDT == "" {
		numeroDDT = syntheticNumeroDDT()
	}
	dataDDT := strings.TrimSpace(data.DataDDT)
	if dataDDT == "" {
		dataDDT = time.Now().UTC().Format("2006-01-02")
	}
	colli := 1
	if data.Colli != nil && *data.Colli > 0 {
		colli = *data.Colli
	}
	peso := 0.0
	if data.Peso != nil {
		peso = *data.Peso
	}

	return domain.NuovaSpedizione{
		CommittenteID:  data.CommittenteID,
		DestinatarioID: data.DestinatarioID,
		DataDDT:        dataDDT,
		NumeroDDT:      numeroDDT,
		Colli:          colli,
		PesoKg:         peso,
		Contrassegno:   data.Contrassegno,
		Stato:          domain.StatoInserita,
		GiroID:         nil,
		Note:           fmt.Sprintf("Importato da DDT - pagina %d", c.PageNumber),
	}
}

func syntheticNumeroDDT() string {
	return "IMPORT-" + strings.ToUpper(uuid.NewString()[:8])
}
