package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// Placeholder literals substituted when the extractor could not supply an
// address component for an auto-created destinatario.
const (
	placeholderIndirizzo = "Da verificare"
	placeholderCAP       = "00000"
	placeholderProvincia = "XX"

	notaAutoCreato = "Anagrafica generata automaticamente da import DDT - dati da verificare"
)

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// resolveCommittente maps an extracted shipper name onto an existing record.
// Exact normalized match first, then substring in either direction so that
// "Cati S.p.A." still finds a committente filed as "Cati". First match wins;
// a miss is not an error.
func resolveCommittente(nome string, known []domain.Committente) (string, bool) {
	n := normalizeName(nome)
	if n == "" {
		return "", false
	}
	for _, c := range known {
		if normalizeName(c.RagioneSociale) == n {
			return c.ID, true
		}
	}
	for _, c := range known {
		kn := normalizeName(c.RagioneSociale)
		if kn == "" {
			continue
		}
		if strings.Contains(n, kn) || strings.Contains(kn, n) {
			return c.ID, true
		}
	}
	return "", false
}

type destinatarioResolution struct {
	id      string
	mapped  bool
	created bool
	errMsg  string
}

// resolveOrCreateDestinatario matches the extracted recipient against the
// in-batch accumulator by exact (nome, citta) pair, creating and appending a
// new record on a miss. No substring fallback here: recipients are far more
// numerous than shippers and conflating two of them is worse than creating
// a duplicate the operator can merge.
func (uc *ImportDDTUseCase) resolveOrCreateDestinatario(
	ctx context.Context,
	estratto *domain.DestinatarioEstratto,
	known []domain.Destinatario,
) (destinatarioResolution, []domain.Destinatario) {
	if estratto == nil {
		return destinatarioResolution{}, known
	}
	nome := normalizeName(estratto.RagioneSociale)
	citta := normalizeName(estratto.Citta)
	if nome == "" || citta == "" {
		return destinatarioResolution{}, known
	}

	for _, d := range known {
		if normalizeName(d.RagioneSociale) == nome && normalizeName(d.Citta) == citta {
			return destinatarioResolution{id: d.ID, mapped: true}, known
		}
	}

	nuovo := domain.Destinatario{
		ID:             uuid.NewString(),
		RagioneSociale: strings.TrimSpace(estratto.RagioneSociale),
		Indirizzo:      orPlaceholder(estratto.Indirizzo, placeholderIndirizzo),
		CAP:            orPlaceholder(estratto.CAP, placeholderCAP),
		Citta:          strings.TrimSpace(estratto.Citta),
		Provincia:      orPlaceholder(estratto.Provincia, placeholderProvincia),
		Note:           notaAutoCreato,
	}
	if err := uc.destinatari.Create(ctx, &nuovo); err != nil {
		return destinatarioResolution{errMsg: err.Error()}, known
	}
	return destinatarioResolution{id: nuovo.ID, created: true}, append(known, nuovo)
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
