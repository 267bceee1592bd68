package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnassist/app/config"
	"learnassist/app/usecase"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/llm"
	"learnassist/internal/infrastructure/metrics"
	"learnassist/internal/infrastructure/store/filesystem"
	mongorepo "learnassist/internal/infrastructure/store/mongodb"
	"learnassist/internal/infrastructure/transport"
	"learnassist/internal/infrastructure/validator"
	"learnassist/internal/infrastructure/web"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := newLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// LLM client
	gateway, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("init llm gateway: %w", err)
	}
	if c, ok := gateway.(io.Closer); ok {
		defer c.Close()
	}
	logger.Info("llm gateway ready", "provider", cfg.LLM.Provider, "model", gateway.Model())

	// Journal
	journal, closeJournal, err := openJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Usecases / services
	var requestValidator usecase.RequestValidator
	if cfg.Server.StrictRequests {
		requestValidator = validator.NewRequestValidator()
		logger.Info("strict request validation enabled")
	}
	learningSvc := usecase.NewLearningService(gateway, journal, requestValidator, logger)
	journalSvc := usecase.NewJournalService(journal)

	// Transport (HTTP handlers)
	handler := transport.NewLearningHandler(learningSvc, journalSvc, logger)

	// Router and server
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	web.RegisterRoutes(r)

	var h http.Handler = handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)(h)
	if cfg.Log.SlogLevel() <= slog.LevelDebug {
		h = handlers.CombinedLoggingHandler(os.Stderr, h)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Server.MetricsAddr != "" {
		go func() {
			logger.Info("starting metrics server", "addr", cfg.Server.MetricsAddr)
			if err := metrics.StartMetricsServer(cfg.Server.MetricsAddr); err != nil {
				logger.Error("metrics server failed", "err", err)
			}
		}()
	}

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	// OS signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	// Shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}

	closeJournal(shutdownCtx)
	logger.Info("service stopped")
	return nil
}

// openJournal returns a nil repository when the journal is disabled.
func openJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.RecordRepository, func(context.Context), error) {
	noop := func(context.Context) {}

	switch cfg.Journal.Backend {
	case config.JournalFilesystem:
		repo, err := filesystem.NewRecordRepository(cfg.Journal.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("init filesystem journal: %w", err)
		}
		logger.Info("journal on filesystem", "dir", repo.BasePath())
		return repo, noop, nil

	case config.JournalMongo:
		mongoCtx, mongoCancel := context.WithTimeout(ctx, 10*time.Second)
		defer mongoCancel()

		client, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, noop, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(mongoCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, noop, fmt.Errorf("mongo ping: %w", err)
		}
		logger.Info("connected to mongo", "database", cfg.Mongo.Database)

		closeFn := func(ctx context.Context) {
			logger.Info("disconnecting mongo")
			if err := client.Disconnect(ctx); err != nil {
				logger.Error("mongo disconnect error", "err", err)
			}
		}
		return mongorepo.NewMongoRecordRepo(client.Database(cfg.Mongo.Database)), closeFn, nil

	default:
		return nil, noop, nil
	}
}
