package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type CommittenteRepository struct {
	db *sql.DB
}

func NewCommittenteRepository(db *sql.DB) *CommittenteRepository {
	return &CommittenteRepository{db: db}
}

func (r *CommittenteRepository) List(ctx context.Context) ([]domain.Committente, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, ragione_sociale, categoria, note
FROM committenti
ORDER BY ragione_sociale
`)
	if err != nil {
		return nil, fmt.Errorf("list committenti: %w", err)
	}
	defer rows.Close()

	var out []domain.Committente
	for rows.Next() {
		var c domain.Committente
		if err := rows.Scan(&c.ID, &c.RagioneSociale, &c.Categoria, &c.Note); err != nil {
			return nil, fmt.Errorf("scan committente: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommittenteRepository) GetByID(ctx context.Context, id string) (*domain.Committente, error) {
	var c domain.Committente
	err := r.db.QueryRowContext(ctx, `
SELECT id, ragione_sociale, categoria, note
FROM committenti
WHERE id = $1
`, id).Scan(&c.ID, &c.RagioneSociale, &c.Categoria, &c.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get committente", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan committente: %w", err)
	}
	return &c, nil
}

func (r *CommittenteRepository) Create(ctx context.Context, c *domain.Committente) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO committenti (id, ragione_sociale, categoria, note)
VALUES ($1, $2, $3, $4)
`, c.ID, c.RagioneSociale, c.Categoria, c.Note)
	if err != nil {
		return fmt.Errorf("insert committente: %w", err)
	}
	return nil
}

func (r *CommittenteRepository) Update(ctx context.Context, c *domain.Committente) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE committenti
SET ragione_sociale = $2, categoria = $3, note = $4
WHERE id = $1
`, c.ID, c.RagioneSociale, c.Categoria, c.Note)
	if err != nil {
		return fmt.Errorf("update committente: %w", err)
	}
	return noneUpdatedAsNotFound(res, "update committente", c.ID)
}

func (r *CommittenteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM committenti WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete committente: %w", err)
	}
	return noneUpdatedAsNotFound(res, "delete committente", id)
}

func noneUpdatedAsNotFound(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, operation, fmt.Errorf("id %s", id))
	}
	return nil
}
