package setup

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database"
	"github.com/safebite/safebite/internal/database/service"
	"github.com/safebite/safebite/internal/leaderboard"
	"github.com/safebite/safebite/internal/outbox"
	"github.com/safebite/safebite/internal/ratelimit"
	"github.com/safebite/safebite/internal/redis"
	"github.com/safebite/safebite/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App bundles the shared dependencies every process starts from: config,
// logging, storage clients, and the wired service layer.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           database.Client
	RedisManager *redis.Manager
	Clock        clockwork.Clock

	Queue       *outbox.Queue
	Limiter     *ratelimit.Limiter
	Leaderboard *leaderboard.Index

	VoteService        *service.VoteService
	AggregationService *service.AggregationService
	ReputationService  *service.ReputationService
	ChallengeService   *service.ChallengeService
}

// InitializeApp loads the config, connects storage, and wires the service
// layer. The caller owns the returned App and must call Cleanup.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Debug.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Loaded configuration", zap.String("configDir", configDir))

	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, logger, true)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisManager := redis.NewManager(&cfg.Redis, logger)

	outboxClient, err := redisManager.GetClient(redis.OutboxDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox Redis client: %w", err)
	}

	boardClient, err := redisManager.GetClient(redis.LeaderboardDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard Redis client: %w", err)
	}

	limiterClient, err := redisManager.GetClient(redis.RatelimitDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limit Redis client: %w", err)
	}

	clock := clockwork.NewRealClock()
	repo := db.Model()

	queue := outbox.NewQueue(outboxClient, logger)
	board := leaderboard.NewIndex(boardClient, logger)
	limiter := ratelimit.NewLimiter(limiterClient, clock, &cfg.RateLimit, logger)

	aggregation := service.NewAggregation(repo.Item(), repo.Vote(), cfg, clock, logger)
	reputation := service.NewReputation(
		repo.Reputation(), repo.Vote(), repo.Item(), board, &cfg.Reputation, clock, logger)
	challenge := service.NewChallenge(repo.Challenge(), reputation, clock, logger)
	vote := service.NewVote(
		repo.Vote(), repo.Item(), repo.Snapshot(), limiter, queue, &cfg.Vote, clock, logger)

	return &App{
		Config:             cfg,
		Logger:             logger,
		DB:                 db,
		RedisManager:       redisManager,
		Clock:              clock,
		Queue:              queue,
		Limiter:            limiter,
		Leaderboard:        board,
		VoteService:        vote,
		AggregationService: aggregation,
		ReputationService:  reputation,
		ChallengeService:   challenge,
	}, nil
}

// Cleanup flushes and closes everything InitializeApp opened.
func (a *App) Cleanup(_ context.Context) {
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	a.RedisManager.Close()

	_ = a.Logger.Sync()
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	return cfg.Build()
}
