package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type textExtractorFake struct {
	pages []string
	err   error
}

func (f *textExtractorFake) Extract(context.Context, []byte, string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type fieldExtractorFake struct {
	fn func(pageText string) (domain.DDTData, error)
}

func (f *fieldExtractorFake) ExtractFields(_ context.Context, pageText string) (domain.DDTData, error) {
	return f.fn(pageText)
}

type committentiFake struct {
	records []domain.Committente
}

func (f *committentiFake) List(context.Context) ([]domain.Committente, error) { return f.records, nil }
func (f *committentiFake) GetByID(_ context.Context, id string) (*domain.Committente, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get committente", errors.New(id))
}
func (f *committentiFake) Create(context.Context, *domain.Committente) error { return nil }
func (f *committentiFake) Update(context.Context, *domain.Committente) error { return nil }
func (f *committentiFake) Delete(context.Context, string) error              { return nil }

type destinatariFake struct {
	records   []domain.Destinatario
	created   []domain.Destinatario
	createErr error
}

func (f *destinatariFake) List(context.Context) ([]domain.Destinatario, error) {
	return f.records, nil
}
func (f *destinatariFake) GetByID(_ context.Context, id string) (*domain.Destinatario, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get destinatario", errors.New(id))
}
func (f *destinatariFake) Create(_ context.Context, d *domain.Destinatario) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *d)
	return nil
}
func (f *destinatariFake) Update(context.Context, *domain.Destinatario) error { return nil }
func (f *destinatariFake) Delete(context.Context, string) error               { return nil }

func fullPageData(committente, destinatario, citta string) domain.DDTData {
	colli := 2
	peso := 12.5
	return domain.DDTData{
		Committente: committente,
		Destinatario: &domain.DestinatarioEstratto{
			RagioneSociale: destinatario,
			Indirizzo:      "Via Roma 1",
			CAP:            "24100",
			Citta:          citta,
			Provincia:      "BG",
		},
		DataDDT:   "2026-08-20",
		NumeroDDT: "DDT-77",
		Colli:     &colli,
		Peso:      &peso,
	}
}

func newImportUC(extractor *textExtractorFake, fields *fieldExtractorFake, committenti *committentiFake, destinatari *destinatariFake) *ImportDDTUseCase {
	return NewImportDDTUseCase(extractor, fields, committenti, destinatari, nil, nil)
}

func TestImportOneCandidatePerNonBlankPage(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno", "   ", "pagina tre"}}
	fields := &fieldExtractorFake{fn: func(text string) (domain.DDTData, error) {
		return fullPageData("Cati", "Delta Store", "Bergamo"), nil
	}}
	uc := newImportUC(extractor, fields, &committentiFake{}, &destinatariFake{})

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(result.Candidates))
	}
	if result.Candidates[0].PageNumber != 1 || result.Candidates[1].PageNumber != 3 {
		t.Fatalf("unexpected page numbers: %d, %d", result.Candidates[0].PageNumber, result.Candidates[1].PageNumber)
	}
	if result.Summary.TotalPages != 3 || result.Summary.ProcessedPages != 2 || result.Summary.PagesWithErrors != 0 {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}
	for _, c := range result.Candidates {
		if c.Status != domain.CandidatePending {
			t.Fatalf("expected pending status, got %s", c.Status)
		}
	}
}

func TestImportPageFailureIsIsolated(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno", "pagina due", "pagina tre"}}
	fields := &fieldExtractorFake{fn: func(text string) (domain.DDTData, error) {
		if text == "pagina due" {
			return domain.DDTData{}, errors.New("unparseable model output")
		}
		return fullPageData("Cati", "Delta Store", "Bergamo"), nil
	}}
	uc := newImportUC(extractor, fields, &committentiFake{}, &destinatariFake{})

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(result.Candidates))
	}
	failed := result.Candidates[1]
	if failed.Error == "" || failed.Data != nil {
		t.Fatalf("expected failed page 2 with error and no data, got %+v", failed)
	}
	if result.Candidates[0].Data == nil || result.Candidates[2].Data == nil {
		t.Fatalf("sibling pages should carry data")
	}
	if result.Summary.PagesWithErrors != 1 {
		t.Fatalf("expected 1 page with errors, got %d", result.Summary.PagesWithErrors)
	}
}

func TestImportEmptyExtractionYieldsErrorCandidate(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return domain.DDTData{}, nil
	}}
	uc := newImportUC(extractor, fields, &committentiFake{}, &destinatariFake{})

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Candidates[0].Error != erroreNessunDato {
		t.Fatalf("expected %q, got %q", erroreNessunDato, result.Candidates[0].Error)
	}
}

func TestImportCommittenteSubstringMatch(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return fullPageData("Cati S.p.A.", "Delta Store", "Bergamo"), nil
	}}
	committenti := &committentiFake{records: []domain.Committente{{ID: "c-1", RagioneSociale: "Cati"}}}
	uc := newImportUC(extractor, fields, committenti, &destinatariFake{})

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	candidate := result.Candidates[0]
	if candidate.Data.CommittenteID != "c-1" {
		t.Fatalf("expected committente c-1, got %q", candidate.Data.CommittenteID)
	}
	if !candidate.Metadata.CommittenteMapped {
		t.Fatalf("expected committenteMapped = true")
	}
}

func TestImportCommittenteMissIsNotAnError(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return fullPageData("Sconosciuto SRL", "Delta Store", "Bergamo"), nil
	}}
	uc := newImportUC(extractor, fields, &committentiFake{records: []domain.Committente{{ID: "c-1", RagioneSociale: "Cati"}}}, &destinatariFake{})

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	candidate := result.Candidates[0]
	if candidate.Error != "" || candidate.Data.CommittenteID != "" || candidate.Metadata.CommittenteMapped {
		t.Fatalf("expected unmapped committente without error, got %+v", candidate)
	}
}

func TestImportDestinatarioCaseInsensitiveMatch(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return fullPageData("Cati", "DELTA STORE", "bergamo"), nil
	}}
	destinatari := &destinatariFake{records: []domain.Destinatario{
		{ID: "d-1", RagioneSociale: "Delta Store", Citta: "Bergamo"},
	}}
	uc := newImportUC(extractor, fields, &committentiFake{}, destinatari)

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	candidate := result.Candidates[0]
	if candidate.Data.DestinatarioID != "d-1" {
		t.Fatalf("expected destinatario d-1, got %q", candidate.Data.DestinatarioID)
	}
	if !candidate.Metadata.DestinatarioMapped || candidate.Metadata.DestinatarioCreated {
		t.Fatalf("expected mapped=true created=false, got %+v", candidate.Metadata)
	}
	if len(destinatari.created) != 0 {
		t.Fatalf("no destinatario should have been created")
	}
}

func TestImportCreatesDestinatarioOncePerBatch(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno", "pagina due"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return fullPageData("Cati", "Nuovo Negozio", "Treviglio"), nil
	}}
	destinatari := &destinatariFake{}
	uc := newImportUC(extractor, fields, &committentiFake{}, destinatari)

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(destinatari.created) != 1 {
		t.Fatalf("expected exactly 1 created destinatario, got %d", len(destinatari.created))
	}
	first, second := result.Candidates[0], result.Candidates[1]
	if !first.Metadata.DestinatarioCreated {
		t.Fatalf("first page should have created the destinatario")
	}
	if second.Metadata.DestinatarioCreated || !second.Metadata.DestinatarioMapped {
		t.Fatalf("second page should have matched the created record, got %+v", second.Metadata)
	}
	if first.Data.DestinatarioID != second.Data.DestinatarioID {
		t.Fatalf("pages resolved to different destinatari: %q vs %q", first.Data.DestinatarioID, second.Data.DestinatarioID)
	}
}

func TestImportCreatedDestinatarioUsesPlaceholders(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return domain.DDTData{
			Committente: "Cati",
			Destinatario: &domain.DestinatarioEstratto{
				RagioneSociale: "Nuovo Negozio",
				Citta:          "Treviglio",
			},
			NumeroDDT: "DDT-1",
		}, nil
	}}
	destinatari := &destinatariFake{}
	uc := newImportUC(extractor, fields, &committentiFake{}, destinatari)

	if _, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	created := destinatari.created[0]
	if created.Indirizzo != placeholderIndirizzo || created.CAP != placeholderCAP || created.Provincia != placeholderProvincia {
		t.Fatalf("expected placeholders, got %+v", created)
	}
	if created.Note != notaAutoCreato {
		t.Fatalf("expected auto-created note, got %q", created.Note)
	}
}

func TestImportDestinatarioWithoutCittaSkipsResolution(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return domain.DDTData{
			Committente:  "Cati",
			Destinatario: &domain.DestinatarioEstratto{RagioneSociale: "Nuovo Negozio"},
			NumeroDDT:    "DDT-1",
		}, nil
	}}
	destinatari := &destinatariFake{}
	uc := newImportUC(extractor, fields, &committentiFake{}, destinatari)

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	candidate := result.Candidates[0]
	if candidate.Error != "" {
		t.Fatalf("missing citta must not be a page error, got %q", candidate.Error)
	}
	if candidate.Data.DestinatarioID != "" || candidate.Metadata.DestinatarioMapped || candidate.Metadata.DestinatarioCreated {
		t.Fatalf("expected no resolution attempt, got %+v", candidate.Metadata)
	}
	if len(destinatari.created) != 0 {
		t.Fatalf("no destinatario should have been created")
	}
}

func TestImportDestinatarioCreationFailureKeepsPageData(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"pagina uno"}}
	fields := &fieldExtractorFake{fn: func(string) (domain.DDTData, error) {
		return fullPageData("Cati", "Nuovo Negozio", "Treviglio"), nil
	}}
	destinatari := &destinatariFake{createErr: errors.New("violazione vincolo")}
	uc := newImportUC(extractor, fields, &committentiFake{}, destinatari)

	result, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	candidate := result.Candidates[0]
	if candidate.Data == nil {
		t.Fatalf("extracted fields must survive a creation failure")
	}
	if candidate.Error != "" {
		t.Fatalf("creation failure must stay in metadata, got page error %q", candidate.Error)
	}
	if !strings.Contains(candidate.Metadata.DestinatarioError, "violazione vincolo") {
		t.Fatalf("expected destinatarioError, got %+v", candidate.Metadata)
	}
	if result.Summary.PagesWithErrors != 0 {
		t.Fatalf("destinatarioError must not count as a page error")
	}
}

func TestImportExtractionFailureAbortsRequest(t *testing.T) {
	extractor := &textExtractorFake{err: domain.WrapError(domain.ErrExtraction, "extract", errors.New("pdf corrotto"))}
	uc := newImportUC(extractor, &fieldExtractorFake{fn: nil}, &committentiFake{}, &destinatariFake{})

	_, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestImportAllBlankPagesRejected(t *testing.T) {
	extractor := &textExtractorFake{pages: []string{"  ", "\n"}}
	uc := newImportUC(extractor, &fieldExtractorFake{fn: nil}, &committentiFake{}, &destinatariFake{})

	_, err := uc.Import(context.Background(), "ddt.pdf", []byte("%PDF"), "application/pdf")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
