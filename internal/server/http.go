package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviabank/trivia-api/internal/config"
	"github.com/triviabank/trivia-api/internal/logging"
	"github.com/triviabank/trivia-api/internal/trivia"
	httperrors "github.com/triviabank/trivia-api/pkg/http/errors"
)

// PingFunc checks that upstream dependencies are reachable.
type PingFunc func(ctx context.Context) error

// NewWSUpgrader builds the WebSocket upgrader, accepting only the configured CORS origins.
func NewWSUpgrader(cors config.CORS) *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || originAllowed(cors.AllowedOrigins, origin)
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// NewHTTPServer wires the question bank API with health, metrics and the question feed.
// redisClient and feedWSHandler may be nil when the change feed is disabled.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, triviaHandler *trivia.HTTPHandler, feedWSHandler http.HandlerFunc) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg.CORS, logger, pingDependencies(pool, redisClient), triviaHandler, feedWSHandler),
	}
}

// NewRouter builds the full handler chain.
func NewRouter(cors config.CORS, logger zerolog.Logger, ping PingFunc, triviaHandler *trivia.HTTPHandler, feedWSHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger := logging.FromContext(r.Context())
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if triviaHandler != nil {
		triviaHandler.Register(mux)
	}

	if feedWSHandler != nil {
		mux.HandleFunc("/ws/questions", feedWSHandler)
	} else {
		mux.HandleFunc("/ws/questions", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondError(w, http.StatusNotImplemented)
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var h http.Handler = mux
	h = instrument(h)
	h = requestLogger(logger)(h)
	h = corsMiddleware(cors)(h)
	h = recoverer(logger)(h)
	return h
}

func pingDependencies(pool *pgxpool.Pool, redisClient *redis.Client) PingFunc {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return err
			}
		}
		return nil
	}
}

func originAllowed(allowed []string, origin string) bool {
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}
