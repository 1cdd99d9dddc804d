package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/triviabank/trivia-api/internal/config"
	"github.com/triviabank/trivia-api/internal/db/queries"
	"github.com/triviabank/trivia-api/internal/db/repository"
	"github.com/triviabank/trivia-api/internal/feed"
	"github.com/triviabank/trivia-api/internal/importer"
	"github.com/triviabank/trivia-api/internal/logging"
	"github.com/triviabank/trivia-api/internal/trivia"
)

func main() {
	var (
		amount     = flag.Int("amount", 10, "Number of questions to fetch (1-50)")
		category   = flag.Int("category", 0, "Bank category id for questions whose category has no match (0 drops them)")
		difficulty = flag.String("difficulty", "", "Open Trivia DB difficulty: easy, medium or hard")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	q := queries.New(pool)
	store := repository.NewStore(repository.NewCategoryRepository(q), repository.NewQuestionRepository(q))

	opts := trivia.ServiceOptions{PageSize: cfg.Trivia.QuestionsPerPage}
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()
		opts.Publisher = feed.NewPublisher(redisClient, cfg.Redis.FeedChannel)
	}
	svc := trivia.NewService(store, opts, logger)

	client := importer.NewOpenTDBClient(cfg.OpenTDB.BaseURL, &http.Client{Timeout: cfg.OpenTDB.Timeout})
	report, err := importer.New(client, svc, logger).Run(logging.IntoContext(ctx, logger), importer.Options{
		Amount:           *amount,
		Difficulty:       *difficulty,
		FallbackCategory: *category,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
	logger.Info().Int("created", report.Created).Msg("done")
}
