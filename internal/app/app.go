package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviabank/trivia-api/internal/config"
	"github.com/triviabank/trivia-api/internal/db/queries"
	"github.com/triviabank/trivia-api/internal/db/repository"
	"github.com/triviabank/trivia-api/internal/feed"
	"github.com/triviabank/trivia-api/internal/logging"
	"github.com/triviabank/trivia-api/internal/server"
	"github.com/triviabank/trivia-api/internal/trivia"
	ws "github.com/triviabank/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, Pub/Sub, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	hub         *ws.Hub
	broadcaster *feed.Broadcaster
	bgCancels   []context.CancelFunc
}

// New bootstraps the logger, Postgres, the optional Redis feed and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	q := queries.New(pool)
	store := repository.NewStore(
		repository.NewCategoryRepository(q),
		repository.NewQuestionRepository(q),
	)

	opts := trivia.ServiceOptions{PageSize: cfg.Trivia.QuestionsPerPage}

	var (
		redisClient *redis.Client
		hub         *ws.Hub
		broadcaster *feed.Broadcaster
		wsHandler   http.HandlerFunc
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		opts.Publisher = feed.NewPublisher(redisClient, cfg.Redis.FeedChannel)

		hub = ws.NewHub(logger)
		broadcaster = feed.NewBroadcaster(redisClient, hub, cfg.Redis.FeedChannel, logger)
		wsHandler = feed.NewHandler(hub, server.NewWSUpgrader(cfg.CORS), logger).HandleWebSocket
		logger.Info().Str("channel", cfg.Redis.FeedChannel).Msg("question feed enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; question feed disabled")
	}

	svc := trivia.NewService(store, opts, logger)
	triviaHandler := trivia.NewHTTPHandler(svc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, triviaHandler, wsHandler)

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		hub:         hub,
		broadcaster: broadcaster,
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	for _, cancel := range a.bgCancels {
		cancel()
	}
	if a.hub != nil {
		a.hub.Close()
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.broadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.broadcaster.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("question feed broadcaster stopped")
			}
		}()
	}
}
