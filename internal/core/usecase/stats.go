package usecase

import (
	"context"
	"time"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
)

// StatsUseCase serves the dashboard counters.
type StatsUseCase struct {
	spedizioni ports.SpedizioneRepository
	now        func() time.Time
}

func NewStatsUseCase(spedizioni ports.SpedizioneRepository) *StatsUseCase {
	return &StatsUseCase{spedizioni: spedizioni, now: time.Now}
}

func (uc *StatsUseCase) Stats(ctx context.Context) (domain.Stats, error) {
	today := uc.now().UTC().Format("2006-01-02")
	return uc.spedizioni.Stats(ctx, today)
}
