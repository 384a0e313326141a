// Package config は環境変数からサーバー設定を読み込みます。
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はプロセス全体の設定です。
type Config struct {
	GeminiAPIKey string

	ListenAddr string
	LogLevel   string
	Debug      bool

	// MaxUploadBytes はリクエストに載せる画像・音声の上限です。
	// コアは分割送信を行わないため、この境界で必ず制限します。
	MaxUploadBytes int64
	JPEGQuality    int

	MaxConcurrentGenerations int
	RequestTimeout           time.Duration
}

// Load は環境変数を読み、検証済みの Config を返します。
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:               getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:                 strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:                    getEnvBool("DEBUG", false),
		MaxUploadBytes:           int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		JPEGQuality:              getEnvInt("JPEG_QUALITY", 75),
		MaxConcurrentGenerations: getEnvInt("MAX_CONCURRENT_GENERATIONS", 4),
		RequestTimeout:           time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 180)) * time.Second,
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if cfg.GeminiAPIKey == "" {
		return Config{}, errors.New("GEMINI_API_KEY is required")
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 75
	}
	if cfg.MaxConcurrentGenerations < 1 {
		cfg.MaxConcurrentGenerations = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 180 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
