package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/belamaran96-coder/vibefit/pkg/assets"
	"github.com/belamaran96-coder/vibefit/pkg/config"
	"github.com/belamaran96-coder/vibefit/pkg/generator"
	"github.com/belamaran96-coder/vibefit/pkg/httpapi"
	"github.com/belamaran96-coder/vibefit/pkg/stylist"
)

func main() {
	// .env はあれば読む。なくてもエラーにしない。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	ctx := context.Background()

	invoker, err := generator.NewClient(ctx, cfg.GeminiAPIKey, log)
	if err != nil {
		log.Error("生成クライアントの初期化に失敗しました", "error", err)
		os.Exit(1)
	}

	svc, err := stylist.New(invoker, stylist.WithLogger(log))
	if err != nil {
		log.Error("stylistの初期化に失敗しました", "error", err)
		os.Exit(1)
	}

	// garment_url 用の取得器。gs:// を使う場合は InputReader を設定する。
	fetcher, err := assets.NewFetcher(newHTTPFetcher(), nil, log)
	if err != nil {
		log.Error("fetcherの初期化に失敗しました", "error", err)
		os.Exit(1)
	}

	server, err := httpapi.NewServer(svc, httpapi.Options{
		Fetcher:        fetcher,
		MaxUploadBytes: cfg.MaxUploadBytes,
		JPEGQuality:    cfg.JPEGQuality,
		MaxConcurrent:  cfg.MaxConcurrentGenerations,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
	})
	if err != nil {
		log.Error("サーバーの初期化に失敗しました", "error", err)
		os.Exit(1)
	}

	log.Info("vibefitサーバーを起動します", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		log.Error("サーバーが停止しました", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
