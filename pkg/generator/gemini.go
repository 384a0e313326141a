package generator

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Client は google.golang.org/genai を使った Invoker の本番実装です。
type Client struct {
	genai *genai.Client
	log   *slog.Logger
}

// NewClient は Gemini API バックエンドのクライアントを初期化します。
func NewClient(ctx context.Context, apiKey string, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	if log == nil {
		log = slog.Default()
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}

	return &Client{genai: gc, log: log}, nil
}

// Invoke は1回分の生成呼び出しを実行します。リトライはここでは行いません。
func (c *Client) Invoke(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		c.log.WarnContext(ctx, "生成呼び出しが失敗しました", "model", model, "error", err)
		return nil, err
	}
	return resp, nil
}
