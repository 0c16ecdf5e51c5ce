package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quant-bot/internal/api/handlers"
	"quant-bot/internal/api/middleware"
	"quant-bot/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if os.Getenv("API_ENV") != "production" {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	st := newStore(log)

	backtestHandler := handlers.NewBacktestHandler(log)
	optimizeHandler := handlers.NewOptimizeHandler(log)
	botHandler := handlers.NewBotHandler(st, log)
	strategyHandler := handlers.NewStrategyHandler()
	symbolHandler := handlers.NewSymbolHandler(log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/optimize", optimizeHandler.RunOptimize)

		api.GET("/bots/:id/portfolio", botHandler.GetPortfolio)
		api.GET("/bots/:id/trades", botHandler.GetTrades)
		api.GET("/bots/:id/runlog", botHandler.GetRunLog)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/symbols", symbolHandler.ListSymbols)
	}

	// Serve the dashboard build when present (SPA routing).
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Info("serving static files", zap.String("dir", staticDir))
	} else {
		log.Info("static directory not found, skipping static file serving",
			zap.String("dir", staticDir))
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

// newStore connects to Redis when REDIS_ADDR is set, else falls back
// to an in-memory store so bot state endpoints still respond.
func newStore(log *zap.Logger) store.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Info("REDIS_ADDR not set, using in-memory store")
		return store.NewMemoryStore()
	}
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			db = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	log.Info("using redis store", zap.String("addr", addr), zap.Int("db", db))
	return store.NewRedisStore(client, log)
}
