package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type SpedizioneRepository struct {
	db *sql.DB
}

func NewSpedizioneRepository(db *sql.DB) *SpedizioneRepository {
	return &SpedizioneRepository{db: db}
}

const spedizioneDettaglioSelect = `
SELECT s.id, s.numero_spedizione, s.committente_id, s.destinatario_id,
       s.data_ddt, s.numero_ddt, s.colli, s.peso_kg, s.contrassegno,
       s.stato, s.giro_id, s.note,
       c.ragione_sociale, c.categoria, c.note,
       d.ragione_sociale, d.indirizzo, d.cap, d.citta, d.provincia, d.zona, d.note
FROM spedizioni s
JOIN committenti c ON c.id = s.committente_id
JOIN destinatari d ON d.id = s.destinatario_id
`

func (r *SpedizioneRepository) List(ctx context.Context) ([]domain.SpedizioneDettaglio, error) {
	rows, err := r.db.QueryContext(ctx, spedizioneDettaglioSelect+`ORDER BY s.numero_spedizione DESC`)
	if err != nil {
		return nil, fmt.Errorf("list spedizioni: %w", err)
	}
	defer rows.Close()
	return scanSpedizioneDettagli(rows)
}

func (r *SpedizioneRepository) ListByDateRange(ctx context.Context, from, to string) ([]domain.SpedizioneDettaglio, error) {
	rows, err := r.db.QueryContext(ctx,
		spedizioneDettaglioSelect+`WHERE s.data_ddt >= $1 AND s.data_ddt <= $2 ORDER BY s.numero_spedizione DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list spedizioni by range: %w", err)
	}
	defer rows.Close()
	return scanSpedizioneDettagli(rows)
}

func scanSpedizioneDettagli(rows *sql.Rows) ([]domain.SpedizioneDettaglio, error) {
	var out []domain.SpedizioneDettaglio
	for rows.Next() {
		var d domain.SpedizioneDettaglio
		err := rows.Scan(
			&d.ID, &d.NumeroSpedizione, &d.CommittenteID, &d.DestinatarioID,
			&d.DataDDT, &d.NumeroDDT, &d.Colli, &d.PesoKg, &d.Contrassegno,
			&d.Stato, &d.GiroID, &d.Note,
			&d.Committente.RagioneSociale, &d.Committente.Categoria, &d.Committente.Note,
			&d.Destinatario.RagioneSociale, &d.Destinatario.Indirizzo, &d.Destinatario.CAP,
			&d.Destinatario.Citta, &d.Destinatario.Provincia, &d.Destinatario.Zona, &d.Destinatario.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("scan spedizione dettaglio: %w", err)
		}
		d.Committente.ID = d.CommittenteID
		d.Destinatario.ID = d.DestinatarioID
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SpedizioneRepository) GetByID(ctx context.Context, id string) (*domain.Spedizione, error) {
	var s domain.Spedizione
	err := r.db.QueryRowContext(ctx, `
SELECT id, numero_spedizione, committente_id, destinatario_id, data_ddt,
       numero_ddt, colli, peso_kg, contrassegno, stato, giro_id, note
FROM spedizioni
WHERE id = $1
`, id).Scan(
		&s.ID, &s.NumeroSpedizione, &s.CommittenteID, &s.DestinatarioID, &s.DataDDT,
		&s.NumeroDDT, &s.Colli, &s.PesoKg, &s.Contrassegno, &s.Stato, &s.GiroID, &s.Note,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get spedizione", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan spedizione: %w", err)
	}
	return &s, nil
}

// Create inserts the shipment and assigns the next progressive number in the
// same statement. The UNIQUE constraint on numero_spedizione turns a lost race
// into a visible insert failure instead of a duplicate.
func (r *SpedizioneRepository) Create(ctx context.Context, s *domain.Spedizione) error {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO spedizioni (id, numero_spedizione, committente_id, destinatario_id,
	data_ddt, numero_ddt, colli, peso_kg, contrassegno, stato, giro_id, note)
VALUES ($1, (SELECT COALESCE(MAX(numero_spedizione), 0) + 1 FROM spedizioni),
	$2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING numero_spedizione
`, s.ID, s.CommittenteID, s.DestinatarioID, s.DataDDT, s.NumeroDDT,
		s.Colli, s.PesoKg, s.Contrassegno, s.Stato, s.GiroID, s.Note,
	).Scan(&s.NumeroSpedizione)
	if err != nil {
		return fmt.Errorf("insert spedizione: %w", err)
	}
	return nil
}

func (r *SpedizioneRepository) Assign(ctx context.Context, id string, giroID *string) (*domain.Spedizione, error) {
	var s domain.Spedizione
	err := r.db.QueryRowContext(ctx, `
UPDATE spedizioni
SET giro_id = $2,
    stato = CASE WHEN $2::text IS NULL THEN 'INSERITA' ELSE 'ASSEGNATA' END
WHERE id = $1
RETURNING id, numero_spedizione, committente_id, destinatario_id, data_ddt,
          numero_ddt, colli, peso_kg, contrassegno, stato, giro_id, note
`, id, giroID).Scan(
		&s.ID, &s.NumeroSpedizione, &s.CommittenteID, &s.DestinatarioID, &s.DataDDT,
		&s.NumeroDDT, &s.Colli, &s.PesoKg, &s.Contrassegno, &s.Stato, &s.GiroID, &s.Note,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "assign spedizione", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("assign spedizione: %w", err)
	}
	return &s, nil
}

func (r *SpedizioneRepository) UpdateStato(ctx context.Context, id string, stato domain.SpedizioneStato) (*domain.Spedizione, error) {
	var s domain.Spedizione
	err := r.db.QueryRowContext(ctx, `
UPDATE spedizioni
SET stato = $2
WHERE id = $1
RETURNING id, numero_spedizione, committente_id, destinatario_id, data_ddt,
          numero_ddt, colli, peso_kg, contrassegno, stato, giro_id, note
`, id, string(stato)).Scan(
		&s.ID, &s.NumeroSpedizione, &s.CommittenteID, &s.DestinatarioID, &s.DataDDT,
		&s.NumeroDDT, &s.Colli, &s.PesoKg, &s.Contrassegno, &s.Stato, &s.GiroID, &s.Note,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "update stato", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("update stato: %w", err)
	}
	return &s, nil
}

func (r *SpedizioneRepository) Stats(ctx context.Context, today string) (domain.Stats, error) {
	var st domain.Stats
	err := r.db.QueryRowContext(ctx, `
SELECT
	COUNT(*) FILTER (WHERE stato = 'INSERITA'),
	COUNT(*) FILTER (WHERE stato = 'IN_CONSEGNA'),
	COUNT(*) FILTER (WHERE stato = 'CONSEGNATA' AND data_ddt = $1),
	(SELECT COUNT(*) FROM giri WHERE data = $1)
FROM spedizioni
`, today).Scan(&st.SpedizioniDaAssegnare, &st.InConsegna, &st.ConsegnateOggi, &st.GiriOggi)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return st, nil
}
