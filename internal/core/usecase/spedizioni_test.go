package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type spedizioniRepoFake struct {
	created   []domain.Spedizione
	nextNum   int
	createErr error
	assigned  *domain.Spedizione
	updated   *domain.Spedizione
}

func (f *spedizioniRepoFake) List(context.Context) ([]domain.SpedizioneDettaglio, error) {
	return nil, nil
}
func (f *spedizioniRepoFake) ListByDateRange(context.Context, string, string) ([]domain.SpedizioneDettaglio, error) {
	return nil, nil
}
func (f *spedizioniRepoFake) GetByID(context.Context, string) (*domain.Spedizione, error) {
	return nil, domain.ErrNotFound
}
func (f *spedizioniRepoFake) Create(_ context.Context, s *domain.Spedizione) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextNum++
	s.NumeroSpedizione = f.nextNum
	f.created = append(f.created, *s)
	return nil
}
func (f *spedizioniRepoFake) Assign(_ context.Context, id string, giroID *string) (*domain.Spedizione, error) {
	if f.assigned == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "assign", errors.New(id))
	}
	out := *f.assigned
	out.GiroID = giroID
	if giroID != nil {
		out.Stato = domain.StatoAssegnata
	} else {
		out.Stato = domain.StatoInserita
	}
	return &out, nil
}
func (f *spedizioniRepoFake) UpdateStato(_ context.Context, id string, stato domain.SpedizioneStato) (*domain.Spedizione, error) {
	if f.updated == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "update stato", errors.New(id))
	}
	out := *f.updated
	out.Stato = stato
	return &out, nil
}
func (f *spedizioniRepoFake) Stats(context.Context, string) (domain.Stats, error) {
	return domain.Stats{}, nil
}

type publisherFake struct {
	events []domain.SpedizioneEvent
	err    error
}

func (f *publisherFake) PublishSpedizioneEvent(_ context.Context, event domain.SpedizioneEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func validIns() domain.NuovaSpedizione {
	return domain.NuovaSpedizione{
		CommittenteID:  "c-1",
		DestinatarioID: "d-1",
		DataDDT:        "2026-08-20",
		NumeroDDT:      "DDT-1",
		Colli:          2,
		PesoKg:         15,
	}
}

func newSpedizioneUC(repo *spedizioniRepoFake, publisher *publisherFake) *SpedizioneUseCase {
	committenti := &committentiFake{records: []domain.Committente{{ID: "c-1", RagioneSociale: "Cati"}}}
	destinatari := &destinatariFake{records: []domain.Destinatario{{ID: "d-1", RagioneSociale: "Delta Store", Citta: "Bergamo"}}}
	if publisher == nil {
		return NewSpedizioneUseCase(repo, committenti, destinatari, nil, nil)
	}
	return NewSpedizioneUseCase(repo, committenti, destinatari, publisher, nil)
}

func TestCreateSpedizioneAssignsNumero(t *testing.T) {
	repo := &spedizioniRepoFake{}
	uc := newSpedizioneUC(repo, nil)

	first, err := uc.Create(context.Background(), validIns())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := uc.Create(context.Background(), validIns())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.NumeroSpedizione <= first.NumeroSpedizione {
		t.Fatalf("numeri must be strictly increasing: %d then %d", first.NumeroSpedizione, second.NumeroSpedizione)
	}
	if first.Stato != domain.StatoInserita {
		t.Fatalf("expected default stato INSERITA, got %s", first.Stato)
	}
}

func TestCreateSpedizioneRejectsUnknownCommittente(t *testing.T) {
	repo := &spedizioniRepoFake{}
	uc := newSpedizioneUC(repo, nil)

	ins := validIns()
	ins.CommittenteID = "ghost"
	_, err := uc.Create(context.Background(), ins)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should have been persisted")
	}
}

func TestCreateSpedizioneValidatesPayload(t *testing.T) {
	uc := newSpedizioneUC(&spedizioniRepoFake{}, nil)

	ins := validIns()
	ins.Colli = 0
	ins.NumeroDDT = " "
	if _, err := uc.Create(context.Background(), ins); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateSpedizionePublishesEvent(t *testing.T) {
	publisher := &publisherFake{}
	uc := newSpedizioneUC(&spedizioniRepoFake{}, publisher)

	if _, err := uc.Create(context.Background(), validIns()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].Kind != domain.EventSpedizioneCreata {
		t.Fatalf("unexpected events: %+v", publisher.events)
	}
}

func TestCreateSpedizioneSurvivesPublishFailure(t *testing.T) {
	publisher := &publisherFake{err: errors.New("nats down")}
	uc := newSpedizioneUC(&spedizioniRepoFake{}, publisher)

	if _, err := uc.Create(context.Background(), validIns()); err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
}

func TestUpdateStatoRejectsInvalid(t *testing.T) {
	uc := newSpedizioneUC(&spedizioniRepoFake{}, nil)

	if _, err := uc.UpdateStato(context.Background(), "sp-1", "SPEDITA"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssignTogglesStato(t *testing.T) {
	repo := &spedizioniRepoFake{assigned: &domain.Spedizione{ID: "sp-1", NumeroSpedizione: 7, Stato: domain.StatoInserita}}
	publisher := &publisherFake{}
	uc := newSpedizioneUC(repo, publisher)

	giro := "g-1"
	assigned, err := uc.Assign(context.Background(), "sp-1", &giro)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if assigned.Stato != domain.StatoAssegnata || assigned.GiroID == nil {
		t.Fatalf("unexpected result: %+v", assigned)
	}

	unassigned, err := uc.Assign(context.Background(), "sp-1", nil)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if unassigned.Stato != domain.StatoInserita || unassigned.GiroID != nil {
		t.Fatalf("unexpected result: %+v", unassigned)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.events))
	}
}
