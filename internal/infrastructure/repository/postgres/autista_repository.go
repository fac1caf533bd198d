package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type AutistaRepository struct {
	db *sql.DB
}

func NewAutistaRepository(db *sql.DB) *AutistaRepository {
	return &AutistaRepository{db: db}
}

func (r *AutistaRepository) List(ctx context.Context) ([]domain.Autista, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, nome, cognome, telefono, zona_principale, attivo
FROM autisti
ORDER BY cognome, nome
`)
	if err != nil {
		return nil, fmt.Errorf("list autisti: %w", err)
	}
	defer rows.Close()

	var out []domain.Autista
	for rows.Next() {
		var a domain.Autista
		if err := rows.Scan(&a.ID, &a.Nome, &a.Cognome, &a.Telefono, &a.ZonaPrincipale, &a.Attivo); err != nil {
			return nil, fmt.Errorf("scan autista: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AutistaRepository) Create(ctx context.Context, a *domain.Autista) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO autisti (id, nome, cognome, telefono, zona_principale, attivo)
VALUES ($1, $2, $3, $4, $5, $6)
`, a.ID, a.Nome, a.Cognome, a.Telefono, a.ZonaPrincipale, a.Attivo)
	if err != nil {
		return fmt.Errorf("insert autista: %w", err)
	}
	return nil
}

func (r *AutistaRepository) Update(ctx context.Context, a *domain.Autista) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE autisti
SET nome = $2, cognome = $3, telefono = $4, zona_principale = $5, attivo = $6
WHERE id = $1
`, a.ID, a.Nome, a.Cognome, a.Telefono, a.ZonaPrincipale, a.Attivo)
	if err != nil {
		return fmt.Errorf("update autista: %w", err)
	}
	return noneUpdatedAsNotFound(res, "update autista", a.ID)
}

func (r *AutistaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM autisti WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete autista: %w", err)
	}
	return noneUpdatedAsNotFound(res, "delete autista", id)
}
