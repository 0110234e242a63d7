package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/th3funto/ninja-store/internal/api"
	"github.com/th3funto/ninja-store/internal/bot"
	"github.com/th3funto/ninja-store/internal/config"
	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
	"github.com/th3funto/ninja-store/pkg/logger"
	"github.com/th3funto/ninja-store/pkg/redis"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
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

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Stopped with error", zap.Error(err))
	}

	zapLogger.Info("Shutdown gracefully")
}

func run(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	store, closeStore, err := newStore(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	defaults := session.Defaults{
		ProductName: cfg.Pricing.ProductName,
		Inputs:      cfg.Pricing.Defaults(),
		Profile:     pricing.ProfileID(cfg.Pricing.Profile),
	}
	sessions := session.NewManager(store, defaults)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.TelegramEnabled() {
		tgBot, err := bot.New(ctx, cfg.Telegram, sessions, zapLogger)
		if err != nil {
			return err
		}
		g.Go(func() error { return tgBot.Start(ctx) })
	} else {
		zapLogger.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	if cfg.HTTP.Enabled {
		server := api.NewServer(cfg.HTTP, defaults, zapLogger)
		g.Go(func() error { return server.Run(ctx) })
	}

	return g.Wait()
}

// newStore picks Redis when an address is configured and process memory
// otherwise.
func newStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (session.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		zapLogger.Info("REDIS_ADDR not set, keeping sessions in memory")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.ConnectTimeout, zapLogger)
	if err != nil {
		return nil, nil, err
	}

	return session.NewRedisStore(redisClient, cfg.SessionTTL), redisClient.Close, nil
}
