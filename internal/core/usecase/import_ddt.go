package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
)

const erroreNessunDato = "Nessun dato riconosciuto"

// ImportDDTUseCase runs the DDT import pipeline: per-page text extraction,
// AI field extraction and entity resolution, one candidate per non-blank page.
// The server keeps no candidate state between requests.
type ImportDDTUseCase struct {
	extractor   ports.TextExtractor
	fields      ports.FieldExtractor
	committenti ports.CommittenteRepository
	destinatari ports.DestinatarioRepository
	archive     ports.DocumentArchive
	logger      *slog.Logger
}

func NewImportDDTUseCase(
	extractor ports.TextExtractor,
	fields ports.FieldExtractor,
	committenti ports.CommittenteRepository,
	destinatari ports.DestinatarioRepository,
	archive ports.DocumentArchive,
	logger *slog.Logger,
) *ImportDDTUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportDDTUseCase{
		extractor:   extractor,
		fields:      fields,
		committenti: committenti,
		destinatari: destinatari,
		archive:     archive,
		logger:      logger,
	}
}

func (uc *ImportDDTUseCase) Import(ctx context.Context, filename string, file []byte, mediaType string) (*domain.ImportResult, error) {
	if len(file) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "import ddt", errors.New("empty file"))
	}

	pages, err := uc.extractor.Extract(ctx, file, mediaType)
	if err != nil {
		return nil, err
	}

	uc.archiveUpload(ctx, filename, file)

	type numberedPage struct {
		number int
		text   string
	}
	nonBlank := make([]numberedPage, 0, len(pages))
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		nonBlank = append(nonBlank, numberedPage{number: i + 1, text: text})
	}
	if len(nonBlank) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "import ddt", errors.New("document contains no extractable text"))
	}

	committenti, err := uc.committenti.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load committenti: %w", err)
	}
	// The accumulator threads recipient creations through the batch so that
	// later pages referencing the same (nome, citta) resolve to the record
	// created for an earlier page instead of duplicating it.
	known, err := uc.destinatari.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load destinatari: %w", err)
	}

	candidates := make([]domain.ImportCandidate, 0, len(nonBlank))
	pagesWithErrors := 0
	for _, page := range nonBlank {
		candidate := domain.ImportCandidate{
			PageNumber: page.number,
			Status:     domain.CandidatePending,
		}

		data, extractErr := uc.fields.ExtractFields(ctx, page.text)
		if extractErr != nil || data.Empty() {
			if extractErr != nil {
				uc.logger.Warn("ddt_page_extraction_failed", "page", page.number, "error", extractErr)
			}
			candidate.Error = erroreNessunDato
			pagesWithErrors++
			candidates = append(candidates, candidate)
			continue
		}

		metadata := domain.CandidateMetadata{}
		if id, ok := resolveCommittente(data.Committente, committenti); ok {
			data.CommittenteID = id
			metadata.CommittenteMapped = true
		}

		var resolution destinatarioResolution
		resolution, known = uc.resolveOrCreateDestinatario(ctx, data.Destinatario, known)
		if resolution.id != "" {
			data.DestinatarioID = resolution.id
		}
		metadata.DestinatarioMapped = resolution.mapped
		metadata.DestinatarioCreated = resolution.created
		metadata.DestinatarioError = resolution.errMsg
		if resolution.errMsg != "" {
			uc.logger.Warn("ddt_destinatario_creation_failed", "page", page.number, "error", resolution.errMsg)
		}

		candidate.Data = &data
		candidate.Metadata = &metadata
		candidates = append(candidates, candidate)
	}

	return &domain.ImportResult{
		Candidates: candidates,
		Summary: domain.ImportSummary{
			TotalPages:      len(pages),
			ProcessedPages:  len(candidates),
			PagesWithErrors: pagesWithErrors,
		},
	}, nil
}

// archiveUpload keeps the raw file for audit. Best effort: a full candidate
// response is worth more than the archive copy.
func (uc *ImportDDTUseCase) archiveUpload(ctx context.Context, filename string, file []byte) {
	if uc.archive == nil {
		return
	}
	key := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	if err := uc.archive.Save(ctx, key, bytes.NewReader(file)); err != nil {
		uc.logger.Warn("ddt_archive_failed", "key", key, "error", err)
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "documento.bin"
	}
	return base
}
