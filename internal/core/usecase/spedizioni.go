package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
)

// SpedizioneUseCase owns shipment creation and lifecycle transitions. The
// numero spedizione is assigned by the repository at insert time; callers
// never supply one.
type SpedizioneUseCase struct {
	spedizioni  ports.SpedizioneRepository
	committenti ports.CommittenteRepository
	destinatari ports.DestinatarioRepository
	events      ports.EventPublisher
	logger      *slog.Logger
}

func NewSpedizioneUseCase(
	spedizioni ports.SpedizioneRepository,
	committenti ports.CommittenteRepository,
	destinatari ports.DestinatarioRepository,
	events ports.EventPublisher,
	logger *slog.Logger,
) *SpedizioneUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpedizioneUseCase{
		spedizioni:  spedizioni,
		committenti: committenti,
		destinatari: destinatari,
		events:      events,
		logger:      logger,
	}
}

func (uc *SpedizioneUseCase) Create(ctx context.Context, ins domain.NuovaSpedizione) (*domain.Spedizione, error) {
	if err := validateNuovaSpedizione(ins); err != nil {
		return nil, err
	}

	if _, err := uc.committenti.GetByID(ctx, ins.CommittenteID); err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "create spedizione", fmt.Errorf("committente %s inesistente", ins.CommittenteID))
		}
		return nil, fmt.Errorf("verify committente: %w", err)
	}
	if _, err := uc.destinatari.GetByID(ctx, ins.DestinatarioID); err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "create spedizione", fmt.Errorf("destinatario %s inesistente", ins.DestinatarioID))
		}
		return nil, fmt.Errorf("verify destinatario: %w", err)
	}

	stato := ins.Stato
	if stato == "" {
		stato = domain.StatoInserita
	}

	spedizione := &domain.Spedizione{
		ID:             uuid.NewString(),
		CommittenteID:  ins.CommittenteID,
		DestinatarioID: ins.DestinatarioID,
		DataDDT:        ins.DataDDT,
		NumeroDDT:      strings.TrimSpace(ins.NumeroDDT),
		Colli:          ins.Colli,
		PesoKg:         ins.PesoKg,
		Contrassegno:   ins.Contrassegno,
		Stato:          stato,
		GiroID:         ins.GiroID,
		Note:           ins.Note,
	}
	if err := uc.spedizioni.Create(ctx, spedizione); err != nil {
		return nil, fmt.Errorf("insert spedizione: %w", err)
	}

	uc.publish(ctx, domain.SpedizioneEvent{
		Kind:             domain.EventSpedizioneCreata,
		SpedizioneID:     spedizione.ID,
		NumeroSpedizione: spedizione.NumeroSpedizione,
		Stato:            spedizione.Stato,
		GiroID:           spedizione.GiroID,
	})
	return spedizione, nil
}

func (uc *SpedizioneUseCase) List(ctx context.Context) ([]domain.SpedizioneDettaglio, error) {
	return uc.spedizioni.List(ctx)
}

// Assign moves a shipment onto a giro (stato ASSEGNATA) or, with a nil
// giroID, back off it (stato INSERITA).
func (uc *SpedizioneUseCase) Assign(ctx context.Context, id string, giroID *string) (*domain.Spedizione, error) {
	spedizione, err := uc.spedizioni.Assign(ctx, id, giroID)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.SpedizioneEvent{
		Kind:             domain.EventSpedizioneAssegnata,
		SpedizioneID:     spedizione.ID,
		NumeroSpedizione: spedizione.NumeroSpedizione,
		Stato:            spedizione.Stato,
		GiroID:           spedizione.GiroID,
	})
	return spedizione, nil
}

func (uc *SpedizioneUseCase) UpdateStato(ctx context.Context, id string, stato domain.SpedizioneStato) (*domain.Spedizione, error) {
	if !stato.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update stato", fmt.Errorf("stato %q non valido", stato))
	}
	spedizione, err := uc.spedizioni.UpdateStato(ctx, id, stato)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.SpedizioneEvent{
		Kind:             domain.EventSpedizioneStato,
		SpedizioneID:     spedizione.ID,
		NumeroSpedizione: spedizione.NumeroSpedizione,
		Stato:            spedizione.Stato,
		GiroID:           spedizione.GiroID,
	})
	return spedizione, nil
}

// publish is best effort: the event feed must never fail a committed write.
func (uc *SpedizioneUseCase) publish(ctx context.Context, event domain.SpedizioneEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishSpedizioneEvent(ctx, event); err != nil {
		uc.logger.Warn("spedizione_event_publish_failed", "kind", event.Kind, "spedizione_id", event.SpedizioneID, "error", err)
	}
}

func validateNuovaSpedizione(ins domain.NuovaSpedizione) error {
	var problems []string
	if strings.TrimSpace(ins.CommittenteID) == "" {
		problems = append(problems, "committenteId mancante")
	}
	if strings.TrimSpace(ins.DestinatarioID) == "" {
		problems = append(problems, "destinatarioId mancante")
	}
	if strings.TrimSpace(ins.DataDDT) == "" {
		problems = append(problems, "dataDDT mancante")
	}
	if strings.TrimSpace(ins.NumeroDDT) == "" {
		problems = append(problems, "numeroDDT mancante")
	}
	if ins.Colli <= 0 {
		problems = append(problems, "colli deve essere positivo")
	}
	if ins.PesoKg < 0 {
		problems = append(problems, "pesoKg non valido")
	}
	if ins.Stato != "" && !ins.Stato.Valid() {
		problems = append(problems, "stato non valido")
	}
	if len(problems) > 0 {
		return domain.WrapError(domain.ErrInvalidInput, "create spedizione", errors.New(strings.Join(problems, "; ")))
	}
	return nil
}
