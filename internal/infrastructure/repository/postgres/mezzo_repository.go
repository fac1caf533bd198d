package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type MezzoRepository struct {
	db *sql.DB
}

func NewMezzoRepository(db *sql.DB) *MezzoRepository {
	return &MezzoRepository{db: db}
}

func (r *MezzoRepository) List(ctx context.Context) ([]domain.Mezzo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, targa, modello, portata_kg, note
FROM mezzi
ORDER BY targa
`)
	if err != nil {
		return nil, fmt.Errorf("list mezzi: %w", err)
	}
	defer rows.Close()

	var out []domain.Mezzo
	for rows.Next() {
		var m domain.Mezzo
		if err := rows.Scan(&m.ID, &m.Targa, &m.Modello, &m.PortataKg, &m.Note); err != nil {
			return nil, fmt.Errorf("scan mezzo: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MezzoRepository) Create(ctx context.Context, m *domain.Mezzo) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO mezzi (id, targa, modello, portata_kg, note)
VALUES ($1, $2, $3, $4, $5)
`, m.ID, m.Targa, m.Modello, m.PortataKg, m.Note)
	if err != nil {
		return fmt.Errorf("insert mezzo: %w", err)
	}
	return nil
}

func (r *MezzoRepository) Update(ctx context.Context, m *domain.Mezzo) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE mezzi
SET targa = $2, modello = $3, portata_kg = $4, note = $5
WHERE id = $1
`, m.ID, m.Targa, m.Modello, m.PortataKg, m.Note)
	if err != nil {
		return fmt.Errorf("update mezzo: %w", err)
	}
	return noneUpdatedAsNotFound(res, "update mezzo", m.ID)
}

func (r *MezzoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mezzi WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mezzo: %w", err)
	}
	return noneUpdatedAsNotFound(res, "delete mezzo", id)
}
