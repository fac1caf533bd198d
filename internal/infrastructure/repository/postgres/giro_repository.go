package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type GiroRepository struct {
	db *sql.DB
}

func NewGiroRepository(db *sql.DB) *GiroRepository {
	return &GiroRepository{db: db}
}

func (r *GiroRepository) GetByID(ctx context.Context, id string) (*domain.Giro, error) {
	var g domain.Giro
	err := r.db.QueryRowContext(ctx, `
SELECT id, data, turno, autista_id, mezzo_id, zona, note
FROM giri
WHERE id = $1
`, id).Scan(&g.ID, &g.Data, &g.Turno, &g.AutistaID, &g.MezzoID, &g.Zona, &g.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get giro", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan giro: %w", err)
	}
	return &g, nil
}

func (r *GiroRepository) ListByData(ctx context.Context, data string) ([]domain.GiroDettaglio, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT g.id, g.data, g.turno, g.autista_id, g.mezzo_id, g.zona, g.note,
       a.nome, a.cognome, a.telefono, a.zona_principale, a.attivo,
       m.targa, m.modello, m.portata_kg, m.note
FROM giri g
JOIN autisti a ON a.id = g.autista_id
JOIN mezzi m ON m.id = g.mezzo_id
WHERE g.data = $1
ORDER BY g.turno, a.cognome
`, data)
	if err != nil {
		return nil, fmt.Errorf("list giri: %w", err)
	}
	defer rows.Close()

	var out []domain.GiroDettaglio
	for rows.Next() {
		var d domain.GiroDettaglio
		err := rows.Scan(
			&d.ID, &d.Data, &d.Turno, &d.AutistaID, &d.MezzoID, &d.Zona, &d.Note,
			&d.Autista.Nome, &d.Autista.Cognome, &d.Autista.Telefono, &d.Autista.ZonaPrincipale, &d.Autista.Attivo,
			&d.Mezzo.Targa, &d.Mezzo.Modello, &d.Mezzo.PortataKg, &d.Mezzo.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("scan giro dettaglio: %w", err)
		}
		d.Autista.ID = d.AutistaID
		d.Mezzo.ID = d.MezzoID
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *GiroRepository) Create(ctx context.Context, g *domain.Giro) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO giri (id, data, turno, autista_id, mezzo_id, zona, note)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, g.ID, g.Data, string(g.Turno), g.AutistaID, g.MezzoID, g.Zona, g.Note)
	if err != nil {
		return fmt.Errorf("insert giro: %w", err)
	}
	return nil
}

// Delete removes the round and puts its spedizioni back in the unassigned
// pool, both inside one transaction.
func (r *GiroRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete giro tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
UPDATE spedizioni
SET giro_id = NULL, stato = 'INSERITA'
WHERE giro_id = $1
`, id); err != nil {
		return fmt.Errorf("unassign spedizioni: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM giri WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete giro: %w", err)
	}
	if err := noneUpdatedAsNotFound(res, "delete giro", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete giro tx: %w", err)
	}
	return nil
}
