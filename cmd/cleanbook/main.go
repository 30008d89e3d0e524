package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cleanbook/internal/bot"
	"cleanbook/internal/bot/state_manager"
	"cleanbook/internal/config"
	"cleanbook/internal/storage/memory"
	"cleanbook/internal/storage/redis"
	"cleanbook/pkg/logger"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	sessions, closeSessions, err := newSessionStore(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init session storage", zap.Error(err))
	}
	defer closeSessions()

	tgBot, err := bot.New(cfg, state_manager.New(sessions), sessions, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}

// sessionStore holds wizard sessions and per-user rate limit counters.
type sessionStore interface {
	state_manager.RedisStorage
	bot.RateLimiter
}

// newSessionStore keeps wizard sessions in Redis when REDIS_ADDR is set and
// in process memory otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (sessionStore, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory and lost on restart",
			zap.Duration("ttl", cfg.SessionTTL))
		return memory.NewStateStore(cfg.SessionTTL), func() {}, nil
	}

	store, err := redis.New(ctx, redis.Config{
		Addr:           cfg.RedisAddr,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		TTL:            cfg.SessionTTL,
		ConnectTimeout: cfg.RedisConnectTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
