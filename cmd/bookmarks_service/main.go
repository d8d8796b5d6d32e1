package main

import (
	"bookmarks_service/internal/auth"
	"bookmarks_service/internal/cache"
	"bookmarks_service/internal/config"
	"bookmarks_service/internal/handler"
	"bookmarks_service/internal/service"
	"bookmarks_service/internal/storage"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "")

	flag.Parse()
	if configPath == "" {
		log.Fatal("failed get config path from flags")
	}

	cfg := config.MustLoadConfig(configPath)

	lgr := setupLogger(cfg.Env)
	lgr.Info("started bookmarks service", slog.String("env", cfg.Env))

	st, err := storage.NewPostgresStorage(cfg.DbURL)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer st.Close()

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis url: %v", err)
	}
	listCache := cache.NewListCache(redis.NewClient(opt), cfg.ListTTL)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	srvc := service.NewService(st, listCache, tokens)
	h := handler.NewHandler(srvc, tokens, lgr)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      h.InitRoutes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	lgr.Info("listening", slog.String("address", cfg.Address))

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
