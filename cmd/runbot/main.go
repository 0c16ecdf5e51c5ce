package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quant-bot/internal/bot"
	"quant-bot/internal/config"
	"quant-bot/internal/data"
	"quant-bot/internal/store"
)

const cycleTimeout = 2 * time.Minute

func main() {
	configPath := flag.String("config", "", "Path to bot YAML config (required)")
	botID := flag.String("bot", "", "Override the bot ID from the config")
	timeout := flag.Duration("timeout", cycleTimeout, "Cycle deadline")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: runbot --config <path> [--bot id] [--timeout 2m]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if os.Getenv("BOT_ENV") != "production" {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", zap.String("path", *configPath), zap.Error(err))
		os.Exit(1)
	}
	if *botID != "" {
		cfg.Bot.ID = *botID
	}

	st := newStore(cfg, log)

	apiKey := os.Getenv("MARKET_API_KEY")
	if apiKey == "" {
		log.Error("MARKET_API_KEY is not set")
		os.Exit(1)
	}
	client := data.NewAPIClient(apiKey, os.Getenv("MARKET_API_URL"), log)
	provider := data.NewCachingProvider(client, st, time.Duration(cfg.Bot.CacheMaxAge), log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	b := bot.New(cfg, provider, st, log)
	if err := b.RunCycle(ctx); err != nil {
		log.Error("bot cycle failed", zap.String("bot", cfg.Bot.ID), zap.Error(err))
		os.Exit(1)
	}
}

func newStore(cfg *config.Config, log *zap.Logger) store.Store {
	addr := cfg.Store.RedisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		log.Warn("no redis address configured, state will not survive this run")
		return store.NewMemoryStore()
	}
	password := cfg.Store.RedisPassword
	if password == "" {
		password = os.Getenv("REDIS_PASSWORD")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       cfg.Store.RedisDB,
	})
	log.Info("using redis store", zap.String("addr", addr), zap.Int("db", cfg.Store.RedisDB))
	return store.NewRedisStore(client, log)
}
