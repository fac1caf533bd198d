package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

type UtenteRepository struct {
	db *sql.DB
}

func NewUtenteRepository(db *sql.DB) *UtenteRepository {
	return &UtenteRepository{db: db}
}

func (r *UtenteRepository) GetByUsername(ctx context.Context, username string) (*domain.Utente, error) {
	var u domain.Utente
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password
FROM utenti
WHERE username = $1
`, username).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get utente", fmt.Errorf("username %s", username))
		}
		return nil, fmt.Errorf("scan utente: %w", err)
	}
	return &u, nil
}
