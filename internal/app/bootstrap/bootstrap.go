package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	revolutionengine "revolution/contexts/collective-governance/revolution-engine"
	postgresadapter "revolution/contexts/collective-governance/revolution-engine/adapters/postgres"
	workerapp "revolution/contexts/collective-governance/revolution-engine/application/workers"
	"revolution/internal/platform/config"
	"revolution/internal/platform/db"
	"revolution/internal/platform/httpserver"
	"revolution/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres    *db.Postgres
	scheduler   workerapp.CycleScheduler
	outboxRelay workerapp.OutboxRelay
	sweepTick   time.Duration
	relayTick   time.Duration
	logger      *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	// Without a DSN the process runs against the in-memory store. Useful for
	// local demos and contract tests; state does not survive a restart.
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN is empty, using in-memory store",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module := revolutionengine.NewInMemoryModule(logger)
		server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{server: server, logger: logger}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := revolutionengine.NewModule(revolutionengine.Dependencies{
		Revolutions: repo,
		Settlement:  repo,
		Outbox:      repo,
		Clock:       postgresadapter.SystemClock{},
		IDGen:       postgresadapter.IDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := revolutionengine.NewModule(revolutionengine.Dependencies{
		Revolutions: repo,
		Settlement:  repo,
		Outbox:      repo,
		Clock:       postgresadapter.SystemClock{},
		IDGen:       postgresadapter.IDGenerator{},
		Logger:      logger,
	})

	return &WorkerApp{
		postgres:  pg,
		scheduler: module.Scheduler,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			BatchSize: cfg.OutboxRelayBatch,
			Logger:    logger,
		},
		sweepTick: cfg.CycleSweepInterval,
		relayTick: cfg.OutboxRelayTick,
		logger:    logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	sweep := time.NewTicker(w.sweepTick)
	defer sweep.Stop()
	relay := time.NewTicker(w.relayTick)
	defer relay.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sweep_interval", w.sweepTick.String(),
		"relay_interval", w.relayTick.String(),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sweep.C:
			if err := w.scheduler.RunOnce(ctx); err != nil {
				return err
			}
		case <-relay.C:
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
