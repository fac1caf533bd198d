package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type DestinatarioRepository struct {
	db *sql.DB
}

func NewDestinatarioRepository(db *sql.DB) *DestinatarioRepository {
	return &DestinatarioRepository{db: db}
}

func (r *DestinatarioRepository) List(ctx context.Context) ([]domain.Destinatario, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, ragione_sociale, indirizzo, cap, citta, provincia, zona, note
FROM destinatari
ORDER BY ragione_sociale
`)
	if err != nil {
		return nil, fmt.Errorf("list destinatari: %w", err)
	}
	defer rows.Close()

	var out []domain.Destinatario
	for rows.Next() {
		var d domain.Destinatario
		if err := rows.Scan(&d.ID, &d.RagioneSociale, &d.Indirizzo, &d.CAP, &d.Citta, &d.Provincia, &d.Zona, &d.Note); err != nil {
			return nil, fmt.Errorf("scan destinatario: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DestinatarioRepository) GetByID(ctx context.Context, id string) (*domain.Destinatario, error) {
	var d domain.Destinatario
	err := r.db.QueryRowContext(ctx, `
SELECT id, ragione_sociale, indirizzo, cap, citta, provincia, zona, note
FROM destinatari
WHERE id = $1
`, id).Scan(&d.ID, &d.RagioneSociale, &d.Indirizzo, &d.CAP, &d.Citta, &d.Provincia, &d.Zona, &d.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get destinatario", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan destinatario: %w", err)
	}
	return &d, nil
}

func (r *DestinatarioRepository) Create(ctx context.Context, d *domain.Destinatario) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO destinatari (id, ragione_sociale, indirizzo, cap, citta, provincia, zona, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, d.ID, d.RagioneSociale, d.Indirizzo, d.CAP, d.Citta, d.Provincia, d.Zona, d.Note)
	if err != nil {
		return fmt.Errorf("insert destinatario: %w", err)
	}
	return nil
}

func (r *DestinatarioRepository) Update(ctx context.Context, d *domain.Destinatario) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE destinatari
SET ragione_sociale = $2, indirizzo = $3, cap = $4, citta = $5, provincia = $6, zona = $7, note = $8
WHERE id = $1
`, d.ID, d.RagioneSociale, d.Indirizzo, d.CAP, d.Citta, d.Provincia, d.Zona, d.Note)
	if err != nil {
		return fmt.Errorf("update destinatario: %w", err)
	}
	return noneUpdatedAsNotFound(res, "update destinatario", d.ID)
}

func (r *DestinatarioRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM destinatari WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete destinatario: %w", err)
	}
	return noneUpdatedAsNotFound(res, "delete destinatario", id)
}
