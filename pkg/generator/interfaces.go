package generator

import (
	"context"

	"google.golang.org/genai"
)

// Invoker は生成モデルという外部能力への唯一の窓口です。
// モデルID・順序付きパーツ列・生成設定を渡し、応答または失敗を受け取ります。
// フォールバック判定に必要な失敗分類は errors.go が担当します。
type Invoker interface {
	Invoke(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
