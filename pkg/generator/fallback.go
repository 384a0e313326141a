package generator

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// 各呼び出し種別のモデル割り当てです。プライマリが能力不一致で
// 失敗した場合のみ、セカンダリへ1回だけ退避します。
const (
	ModelImagePrimary  = "gemini-3-pro-image-preview"
	ModelImageFallback = "gemini-2.5-flash-image"
	ModelChatPrimary   = "gemini-3-pro-preview"
	ModelChatFallback  = "gemini-2.5-flash"
	ModelAnalyze       = "gemini-3-pro-preview"
	ModelTranscribe    = "gemini-2.5-flash"
)

// Route は呼び出し種別ごとのフォールバック方針を宣言的に表します。
// 状態機械の本体は Execute 一つだけで、種別ごとの差分はこの
// レコードのフィールドに閉じ込めます。
type Route struct {
	// Primary / Fallback は優先・退避先のモデルIDです。
	Primary  string
	Fallback string

	// Degrade はセカンダリモデルが解釈できない設定を取り除きます。
	// 渡される設定は複製済みなので破壊的に書き換えて構いません。
	Degrade func(cfg *genai.GenerateContentConfig)

	// RetryOnEmpty は「成功したが中身が取り出せない」結果を
	// 退避の引き金として扱うかどうかです。画像生成系のみ true です。
	RetryOnEmpty bool

	// Empty は RetryOnEmpty の判定に使う空応答の定義です。
	// 未設定なら「画像が取り出せないこと」を空とみなします。
	Empty func(resp *genai.GenerateContentResponse) bool
}

// Attempt は最終的に成功した応答と、それを実際に生成したモデルです。
type Attempt struct {
	Response *genai.GenerateContentResponse
	Model    string
}

// GenerateRoute は試着画像生成のルートです。フォールバック時には
// プライマリ専用の ImageSize（品質ノブ）を黙って落とします。
func GenerateRoute() Route {
	return Route{
		Primary:      ModelImagePrimary,
		Fallback:     ModelImageFallback,
		Degrade:      dropImageSize,
		RetryOnEmpty: true,
	}
}

// EditRoute は画像編集のルートです。品質ノブ自体が存在しないため
// Degrade は不要です。
func EditRoute() Route {
	return Route{
		Primary:      ModelImagePrimary,
		Fallback:     ModelImageFallback,
		RetryOnEmpty: true,
	}
}

// ChatRoute はチャットのルートです。空応答での退避は行いません
// （画像生成固有の挙動のため）。フォールバック時は思考バジェットを
// 取り除き、検索ツールは残します。
func ChatRoute() Route {
	return Route{
		Primary:  ModelChatPrimary,
		Fallback: ModelChatFallback,
		Degrade:  dropThinkingBudget,
		Empty:    emptyText,
	}
}

// Execute はフォールバック状態機械の唯一の実装です。
// プライマリを1回試行し、能力不一致の失敗（および RetryOnEmpty な
// ルートでは空成功）に限ってセカンダリを1回だけ試行します。
// セカンダリの結果が成否を問わず最終結果です。
func (r Route) Execute(ctx context.Context, inv Invoker, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*Attempt, error) {
	empty := r.Empty
	if empty == nil {
		empty = emptyImage
	}

	resp, err := inv.Invoke(ctx, r.Primary, contents, cfg)
	if err == nil {
		if !r.RetryOnEmpty || !empty(resp) {
			return &Attempt{Response: resp, Model: r.Primary}, nil
		}
		// 成功したのに中身がない。画像生成系ではこれも退避対象です。
		err = ErrEmptyResult
	} else if !IsCapabilityError(err) {
		return nil, err
	}

	if r.Fallback == "" {
		return nil, err
	}

	slog.WarnContext(ctx, "プライマリモデルから退避します",
		"primary", r.Primary, "fallback", r.Fallback, "reason", err)

	fallbackCfg := cloneConfig(cfg)
	if r.Degrade != nil && fallbackCfg != nil {
		r.Degrade(fallbackCfg)
	}

	resp, fallbackErr := inv.Invoke(ctx, r.Fallback, contents, fallbackCfg)
	if fallbackErr != nil {
		return nil, fmt.Errorf("fallback model %s failed: %w (primary: %v)", r.Fallback, fallbackErr, err)
	}
	if r.RetryOnEmpty && empty(resp) {
		return nil, fmt.Errorf("fallback model %s: %w", r.Fallback, ErrEmptyResult)
	}
	return &Attempt{Response: resp, Model: r.Fallback}, nil
}

func emptyImage(resp *genai.GenerateContentResponse) bool {
	return ExtractImage(resp) == nil
}

func emptyText(resp *genai.GenerateContentResponse) bool {
	return ExtractText(resp) == ""
}

func dropImageSize(cfg *genai.GenerateContentConfig) {
	if cfg.ImageConfig != nil {
		cfg.ImageConfig.ImageSize = ""
	}
}

func dropThinkingBudget(cfg *genai.GenerateContentConfig) {
	cfg.ThinkingConfig = nil
}

// cloneConfig は退避用に設定を複製します。ネストした構造体も
// 別インスタンスにして、呼び出し元の設定を汚さないようにします。
func cloneConfig(cfg *genai.GenerateContentConfig) *genai.GenerateContentConfig {
	if cfg == nil {
		return nil
	}
	clone := *cfg
	if cfg.ImageConfig != nil {
		ic := *cfg.ImageConfig
		clone.ImageConfig = &ic
	}
	if cfg.ThinkingConfig != nil {
		tc := *cfg.ThinkingConfig
		clone.ThinkingConfig = &tc
	}
	return &clone
}
