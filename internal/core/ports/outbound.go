package ports

import (
	"context"
	"io"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// CommittenteRepository persists shipper master data.
type CommittenteRepository interface {
	List(ctx context.Context) ([]domain.Committente, error)
	GetByID(ctx context.Context, id string) (*domain.Committente, error)
	Create(ctx context.Context, c *domain.Committente) error
	Update(ctx context.Context, c *domain.Committente) error
	Delete(ctx context.Context, id string) error
}

// DestinatarioRepository persists recipient master data.
type DestinatarioRepository interface {
	List(ctx context.Context) ([]domain.Destinatario, error)
	GetByID(ctx context.Context, id string) (*domain.Destinatario, error)
	Create(ctx context.Context, d *domain.Destinatario) error
	Update(ctx context.Context, d *domain.Destinatario) error
	Delete(ctx context.Context, id string) error
}

type AutistaRepository interface {
	List(ctx context.Context) ([]domain.Autista, error)
	Create(ctx context.Context, a *domain.Autista) error
	Update(ctx context.Context, a *domain.Autista) error
	Delete(ctx context.Context, id string) error
}

type MezzoRepository interface {
	List(ctx context.Context) ([]domain.Mezzo, error)
	Create(ctx context.Context, m *domain.Mezzo) error
	Update(ctx context.Context, m *domain.Mezzo) error
	Delete(ctx context.Context, id string) error
}

// GiroRepository persists delivery rounds. Delete unassigns the round's
// spedizioni (giro_id cleared, stato back to INSERITA) in the same transaction.
type GiroRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Giro, error)
	ListByData(ctx context.Context, data string) ([]domain.GiroDettaglio, error)
	Create(ctx context.Context, g *domain.Giro) error
	Delete(ctx context.Context, id string) error
}

// SpedizioneRepository persists shipments. Create assigns the next sequential
// numero_spedizione atomically inside the insert statement.
type SpedizioneRepository interface {
	List(ctx context.Context) ([]domain.SpedizioneDettaglio, error)
	ListByDateRange(ctx context.Context, from, to string) ([]domain.SpedizioneDettaglio, error)
	GetByID(ctx context.Context, id string) (*domain.Spedizione, error)
	Create(ctx context.Context, s *domain.Spedizione) error
	Assign(ctx context.Context, id string, giroID *string) (*domain.Spedizione, error)
	UpdateStato(ctx context.Context, id string, stato domain.SpedizioneStato) (*domain.Spedizione, error)
	Stats(ctx context.Context, today string) (domain.Stats, error)
}

// UtenteRepository backs the single-credential login check.
type UtenteRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Utente, error)
}

// TextExtractor turns an uploaded file into ordered per-page text blocks.
type TextExtractor interface {
	Extract(ctx context.Context, file []byte, mediaType string) ([]string, error)
}

// FieldExtractor pulls structured DDT fields out of one page's raw text.
// Fields absent from the source text are omitted, never guessed.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, pageText string) (domain.DDTData, error)
}

// DocumentArchive keeps the raw uploaded files for audit.
type DocumentArchive interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// EventPublisher emits shipment lifecycle events for downstream consumers.
type EventPublisher interface {
	PublishSpedizioneEvent(ctx context.Context, event domain.SpedizioneEvent) error
}
