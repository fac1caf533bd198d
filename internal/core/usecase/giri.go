package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
)

// GiroUseCase manages delivery rounds for the planning board.
type GiroUseCase struct {
	giri ports.GiroRepository
}

func NewGiroUseCase(giri ports.GiroRepository) *GiroUseCase {
	return &GiroUseCase{giri: giri}
}

func (uc *GiroUseCase) Create(ctx context.Context, g domain.Giro) (*domain.Giro, error) {
	if err := validateGiro(g); err != nil {
		return nil, err
	}
	g.ID = uuid.NewString()
	if err := uc.giri.Create(ctx, &g); err != nil {
		return nil, fmt.Errorf("insert giro: %w", err)
	}
	return &g, nil
}

func (uc *GiroUseCase) GetByID(ctx context.Context, id string) (*domain.Giro, error) {
	return uc.giri.GetByID(ctx, id)
}

func (uc *GiroUseCase) ListByData(ctx context.Context, data string) ([]domain.GiroDettaglio, error) {
	if strings.TrimSpace(data) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list giri", fmt.Errorf("data mancante"))
	}
	return uc.giri.ListByData(ctx, data)
}

// Delete removes the round; its spedizioni are unassigned by the repository
// in the same transaction.
func (uc *GiroUseCase) Delete(ctx context.Context, id string) error {
	return uc.giri.Delete(ctx, id)
}

func validateGiro(g domain.Giro) error {
	var problems []string
	if strings.TrimSpace(g.Data) == "" {
		problems = append(problems, "data mancante")
	}
	if g.Turno != domain.TurnoMattino && g.Turno != domain.TurnoPomeriggio {
		problems = append(problems, "turno non valido")
	}
	if strings.TrimSpace(g.AutistaID) == "" {
		problems = append(problems, "autistaId mancante")
	}
	if strings.TrimSpace(g.MezzoID) == "" {
		problems = append(problems, "mezzoId mancante")
	}
	if len(problems) > 0 {
		return domain.WrapError(domain.ErrInvalidInput, "create giro", fmt.Errorf("%s", strings.Join(problems, "; ")))
	}
	return nil
}
