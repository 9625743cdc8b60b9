package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tamilnews/internal/adapter/fetcher"
	"tamilnews/internal/adapter/parser"
	"tamilnews/internal/config"
	"tamilnews/internal/enrich"
	"tamilnews/internal/migrations"
	server "tamilnews/internal/transport/http"
	"tamilnews/internal/usecase"
	"tamilnews/internal/worker"
	"tamilnews/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

// NewController собирает конвейер загрузки, разбора и обогащения ленты из конфигурации.
// Используется и командами CLI, и режимом serve.
func NewController(cfg *config.Config, log *slog.Logger, opts ...usecase.ControllerOption) (*usecase.NewsController, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build publisher catalog: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	log.Debug("Publisher catalog loaded",
		slog.String("component", "app"),
		slog.Int("publishers", len(catalog.Names())),
	)
	httpFetcher := fetcher.NewHTTPFetcher(log,
		fetcher.WithTimeout(cfg.FetchTimeoutDuration()),
		fetcher.WithUserAgent(cfg.App.UserAgent),
	)
	feedParser := parser.NewFeedParser(log)
	pipeline := enrich.New(catalog,
		enrich.WithLocation(loc),
		enrich.WithPlaceholderImage(cfg.App.PlaceholderImage),
		enrich.WithLogger(log),
	)
	return usecase.NewNewsController(httpFetcher, feedParser, pipeline, cfg.App.FeedURL, log, opts...), nil
}

// App представляет приложение в режиме serve.
// Координирует работу HTTP-сервера, воркера обновления ленты и необязательного архива в БД.
type App struct {
	config     *config.Config
	logger     *slog.Logger
	server     *http.Server
	worker     *worker.Worker
	controller *usecase.NewsController
	archive    storage.Storage
	wg         sync.WaitGroup
}

// New создает и инициализирует приложение.
// Если в конфигурации задан хост БД, подключается к PostgreSQL, применяет миграции
// и включает архив статей.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	var opts []usecase.ControllerOption
	var archive storage.Storage
	if cfg.Database.Enabled() {
		db, err := openArchive(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		archive = db
		opts = append(opts, usecase.WithArchive(db))
	}

	controller, err := NewController(cfg, log, opts...)
	if err != nil {
		if archive != nil {
			archive.Close()
		}
		return nil, fmt.Errorf("bad init app: %w", err)
	}

	handler := server.NewHandler(log, controller, nil)
	if archive != nil {
		handler = server.NewHandler(log, controller, usecase.NewNewsGetterUseCase(archive))
	}
	router := server.NewServer(log, handler)

	return &App{
		config:     cfg,
		logger:     log,
		controller: controller,
		archive:    archive,
		worker:     worker.New(controller, cfg.RefreshEvery(), cfg.FetchTimeoutDuration(), log),
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func openArchive(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage.PostgresArticleDB, error) {
	dbLog := log.With(slog.String("component", "database"))
	dbPool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	dbLog.Info("Database connection established")
	if err := migrations.Apply(ctx, log, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return storage.NewPostgresArticleDB(dbPool, cfg.App, log), nil
}

// Controller возвращает контроллер новостей приложения.
func (a *App) Controller() *usecase.NewsController { return a.controller }

// Run запускает воркер и HTTP-сервер и блокируется до SIGINT/SIGTERM
// или отмены ctx, после чего выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting Tamil news service",
		slog.String("component", "app"),
		slog.String("feed_url", a.config.App.FeedURL),
		slog.String("refresh_interval", a.worker.GetInterval().String()),
		slog.Bool("archive", a.archive != nil),
	)
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		a.closeArchive()
		return fmt.Errorf("failed to create listener: %w", err)
	}
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.worker.Start()

	serverErr := make(chan error, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server failed", slog.String("component", "server"), slog.Any("error", err))
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		a.logger.Info("Shutdown signal received",
			slog.String("component", "app"),
			slog.String("signal", sig.String()),
		)
	case <-ctx.Done():
		a.logger.Info("Context cancelled, initiating shutdown", slog.String("component", "app"))
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	}
	if err := a.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown останавливает воркер, завершает HTTP-сервер с таймаутом 10 секунд,
// закрывает архив и ожидает завершения всех горутин.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown", slog.String("component", "app"))
	a.worker.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var err error
	if err = a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.String("component", "server"), slog.Any("error", err))
		err = fmt.Errorf("http server shutdown: %w", err)
	}
	a.closeArchive()
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully", slog.String("component", "app"))
	return err
}

func (a *App) closeArchive() {
	if a.archive != nil {
		a.archive.Close()
		a.archive = nil
	}
}
