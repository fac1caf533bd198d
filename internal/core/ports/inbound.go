package ports

import (
	"context"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// DDTImporter is the inbound contract for the document import pipeline.
type DDTImporter interface {
	Import(ctx context.Context, filename string, file []byte, mediaType string) (*domain.ImportResult, error)
}

// SpedizioneService is the inbound contract for shipment lifecycle operations.
type SpedizioneService interface {
	Create(ctx context.Context, ins domain.NuovaSpedizione) (*domain.Spedizione, error)
	List(ctx context.Context) ([]domain.SpedizioneDettaglio, error)
	Assign(ctx context.Context, id string, giroID *string) (*domain.Spedizione, error)
	UpdateStato(ctx context.Context, id string, stato domain.SpedizioneStato) (*domain.Spedizione, error)
}

// GiroService is the inbound contract for delivery round planning.
type GiroService interface {
	Create(ctx context.Context, g domain.Giro) (*domain.Giro, error)
	GetByID(ctx context.Context, id string) (*domain.Giro, error)
	ListByData(ctx context.Context, data string) ([]domain.GiroDettaglio, error)
	Delete(ctx context.Context, id string) error
}

// StatsService serves the dashboard counters.
type StatsService interface {
	Stats(ctx context.Context) (domain.Stats, error)
}
