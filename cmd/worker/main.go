package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ptrevisan/gestionale-trasporti/internal/bootstrap"
	"github.com/ptrevisan/gestionale-trasporti/internal/config"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/observability/logging"
	"github.com/ptrevisan/gestionale-trasporti/internal/observability/metrics"
)

// The worker consumes the spedizione event feed. Today it logs transitions
// and keeps the Prometheus counters downstream dashboards read; anything
// heavier (notifiche agli autisti, sync verso il gestionale contabile) plugs
// into the same handler.
func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := http.ListenAndServe(":"+cfg.WorkerMetricsPort, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("worker_metrics_server_error", "error", err)
		}
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Events.SubscribeSpedizioneEvents(ctx, func(handlerCtx context.Context, event domain.SpedizioneEvent) error {
		start := time.Now()
		workerMetrics.StartEvent()

		logger.Info("spedizione_event",
			"kind", string(event.Kind),
			"spedizione_id", event.SpedizioneID,
			"numero", event.NumeroSpedizione,
			"stato", string(event.Stato),
		)

		workerMetrics.FinishEvent("worker", string(event.Kind), time.Since(start), nil)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
