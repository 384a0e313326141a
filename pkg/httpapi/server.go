// Package httpapi は試着コアを呼び出す薄いHTTPトランスポート層です。
// コア自体はHTTPを知らないため、入力の境界チェック（サイズ上限、
// 同時実行数、タイムアウト）はすべてこの層で行います。
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/semaphore"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
)

// Service は試着コアの4つの操作です。stylist.Stylist が実装します。
type Service interface {
	TryOn(ctx context.Context, person, garment domain.ImageAsset, ratio domain.AspectRatio, quality domain.ImageQuality) (*domain.AnalysisResult, *domain.ImageAsset, error)
	Edit(ctx context.Context, image domain.ImageAsset, instruction string, ratio domain.AspectRatio) (*domain.ImageAsset, error)
	Chat(ctx context.Context, history []domain.ConversationTurn, message string, opts domain.ChatOptions) (string, error)
	Transcribe(ctx context.Context, clip domain.AudioClip) (string, error)
}

// ImageFetcher は URL 指定の参照画像取得です。assets.Fetcher が実装します。
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.ImageAsset, error)
}

// Options は Server の構成です。
type Options struct {
	Fetcher        ImageFetcher
	MaxUploadBytes int64
	JPEGQuality    int
	MaxConcurrent  int
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Server は mux ルーターに試着APIのハンドラーを載せます。
type Server struct {
	svc         Service
	fetcher     ImageFetcher
	sem         *semaphore.Weighted
	maxUpload   int64
	jpegQuality int
	timeout     time.Duration
	log         *slog.Logger
}

// NewServer は Server を初期化します。svc は必須です。
func NewServer(svc Service, opts Options) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("svc (Service) is required")
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 75
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 180 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Server{
		svc:         svc,
		fetcher:     opts.Fetcher,
		sem:         semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		maxUpload:   opts.MaxUploadBytes,
		jpegQuality: opts.JPEGQuality,
		timeout:     opts.RequestTimeout,
		log:         opts.Logger,
	}, nil
}

// Router はAPIのルーティングを構築します。
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/tryon", s.handleTryOn).Methods(http.MethodPost)
	r.HandleFunc("/api/edit", s.handleEdit).Methods(http.MethodPost)
	r.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/api/transcribe", s.handleTranscribe).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
