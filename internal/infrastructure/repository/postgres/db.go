package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables and the seeded back-office login. Dates are
// stored as ISO-8601 text to match the wire format end to end.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026053101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS committenti (
	id TEXT PRIMARY KEY,
	ragione_sociale TEXT NOT NULL,
	categoria TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS destinatari (
	id TEXT PRIMARY KEY,
	ragione_sociale TEXT NOT NULL,
	indirizzo TEXT NOT NULL,
	cap TEXT NOT NULL,
	citta TEXT NOT NULL,
	provincia TEXT NOT NULL,
	zona TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_destinatari_nome_citta
	ON destinatari (LOWER(ragione_sociale), LOWER(citta));

CREATE TABLE IF NOT EXISTS autisti (
	id TEXT PRIMARY KEY,
	nome TEXT NOT NULL,
	cognome TEXT NOT NULL,
	telefono TEXT NOT NULL,
	zona_principale TEXT NOT NULL,
	attivo BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS mezzi (
	id TEXT PRIMARY KEY,
	targa TEXT NOT NULL UNIQUE,
	modello TEXT NOT NULL,
	portata_kg INTEGER NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS giri (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	turno TEXT NOT NULL,
	autista_id TEXT NOT NULL REFERENCES autisti(id),
	mezzo_id TEXT NOT NULL REFERENCES mezzi(id),
	zona TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_giri_data ON giri(data);

CREATE TABLE IF NOT EXISTS spedizioni (
	id TEXT PRIMARY KEY,
	numero_spedizione INTEGER NOT NULL UNIQUE,
	committente_id TEXT NOT NULL REFERENCES committenti(id),
	destinatario_id TEXT NOT NULL REFERENCES destinatari(id),
	data_ddt TEXT NOT NULL,
	numero_ddt TEXT NOT NULL,
	colli INTEGER NOT NULL,
	peso_kg DOUBLE PRECISION NOT NULL,
	contrassegno DOUBLE PRECISION,
	stato TEXT NOT NULL DEFAULT 'INSERITA',
	giro_id TEXT REFERENCES giri(id),
	note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_spedizioni_stato ON spedizioni(stato);
CREATE INDEX IF NOT EXISTS idx_spedizioni_giro ON spedizioni(giro_id);

CREATE TABLE IF NOT EXISTS utenti (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO utenti (id, username, password)
VALUES ('u-ufficio', 'ufficio', 'password123')
ON CONFLICT (username) DO NOTHING
`); err != nil {
		return fmt.Errorf("seed utente: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
