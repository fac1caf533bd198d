package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "github.com/ptrevisan/gestionale-trasporti/internal/adapters/http"
	"github.com/ptrevisan/gestionale-trasporti/internal/config"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/usecase"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/events/nats"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/export/excel"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/extractor/document"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/llm/openai"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/ocr/tesseract"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/repository/postgres"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/resilience"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/storage/localfs"
	"github.com/ptrevisan/gestionale-trasporti/internal/observability/metrics"
)

// App wires the whole back office: repositories, import pipeline, services
// and the event feed. Both binaries build from the same graph.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Events *nats.Publisher

	RouterDeps httpadapter.RouterDeps

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	committenti := postgres.NewCommittenteRepository(db)
	destinatari := postgres.NewDestinatarioRepository(db)
	autisti := postgres.NewAutistaRepository(db)
	mezzi := postgres.NewMezzoRepository(db)
	giri := postgres.NewGiroRepository(db)
	spedizioni := postgres.NewSpedizioneRepository(db)
	utenti := postgres.NewUtenteRepository(db)

	archive, err := localfs.New(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("init document archive: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	events, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init event publisher: %w", err)
	}

	ocr := tesseract.New(cfg.OCRBaseURL, executor)
	extractor := document.NewExtractor(ocr, logger)

	llmClient := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel,
		openai.WithRateLimit(cfg.LLMRateLimit, cfg.LLMRateBurst),
		openai.WithExecutor(executor),
	)
	fields := openai.NewFieldExtractor(llmClient)

	importUC := usecase.NewImportDDTUseCase(extractor, fields, committenti, destinatari, archive, logger)
	spedizioniUC := usecase.NewSpedizioneUseCase(spedizioni, committenti, destinatari, events, logger)
	giriUC := usecase.NewGiroUseCase(giri)
	statsUC := usecase.NewStatsUseCase(spedizioni)
	exporter := excel.NewExporter(spedizioni, logger)

	httpMetrics := metrics.NewHTTPServerMetrics("api")

	return &App{
		Config: cfg,
		Logger: logger,
		Events: events,
		RouterDeps: httpadapter.RouterDeps{
			Committenti:    committenti,
			Destinatari:    destinatari,
			Autisti:        autisti,
			Mezzi:          mezzi,
			Utenti:         utenti,
			Spedizioni:     spedizioniUC,
			Giri:           giriUC,
			Stats:          statsUC,
			Importer:       importUC,
			Exporter:       exporter,
			UploadMaxBytes: cfg.UploadMaxBytes,
			Metrics:        httpMetrics,
			Logger:         logger,
		},
		closeFn: func() {
			events.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
