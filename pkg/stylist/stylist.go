// Package stylist は試着フローの調整役です。分析 → 解析 → 生成の
// 逐次パイプラインに加え、独立した編集・チャット・文字起こしを提供します。
// リモートモデルへの退避方針は generator.Route に委譲します。
package stylist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
	"github.com/belamaran96-coder/vibefit/pkg/generator"
)

// Stylist は試着コアの4つの公開操作を束ねます。
// 呼び出しごとに状態を持たないため、複数の呼び出しが同時に走っても
// 調整は不要です。
type Stylist struct {
	inv generator.Invoker
	log *slog.Logger

	generateRoute generator.Route
	editRoute     generator.Route
	chatRoute     generator.Route

	analyzeModel    string
	transcribeModel string
}

// Option は Stylist の構成を調整します。
type Option func(*Stylist)

// WithLogger はログ出力先を差し替えます。
func WithLogger(log *slog.Logger) Option {
	return func(s *Stylist) {
		if log != nil {
			s.log = log
		}
	}
}

// WithChatRoute はチャットの退避方針を差し替えます。空応答リトライの
// 非対称性は観察された挙動の保存であり、ルート単位で変更可能にしています。
func WithChatRoute(route generator.Route) Option {
	return func(s *Stylist) { s.chatRoute = route }
}

// New は Stylist を初期化します。inv は必須です。
func New(inv generator.Invoker, opts ...Option) (*Stylist, error) {
	if inv == nil {
		return nil, fmt.Errorf("inv (generator.Invoker) is required")
	}

	s := &Stylist{
		inv:             inv,
		log:             slog.Default(),
		generateRoute:   generator.GenerateRoute(),
		editRoute:       generator.EditRoute(),
		chatRoute:       generator.ChatRoute(),
		analyzeModel:    generator.ModelAnalyze,
		transcribeModel: generator.ModelTranscribe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TryOn はエンドツーエンドの試着フローを実行します。
// まず単一モデルで人物と衣服を分析し、解析結果の Instructions を
// そのまま生成ステップの指示文として退避ルートに渡します。
// 分析が失敗した場合は生成を試みずに中断します。
func (s *Stylist) TryOn(ctx context.Context, person, garment domain.ImageAsset, ratio domain.AspectRatio, quality domain.ImageQuality) (*domain.AnalysisResult, *domain.ImageAsset, error) {
	contents, cfg := generator.BuildAnalyzeRequest(analyzeSystemPrompt, person, garment)
	resp, err := s.inv.Invoke(ctx, s.analyzeModel, contents, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("garment analysis failed: %w", err)
	}

	analysis := ParseAnalysis(generator.ExtractText(resp))
	s.log.InfoContext(ctx, "分析が完了しました",
		"model", s.analyzeModel, "instructions_len", len(analysis.Instructions))

	genContents, genCfg := generator.BuildGenerateRequest(analysis.Instructions, person, ratio, quality)
	attempt, err := s.generateRoute.Execute(ctx, s.inv, genContents, genCfg)
	if err != nil {
		return &analysis, nil, fmt.Errorf("try-on generation failed: %w", err)
	}

	image := generator.ExtractImage(attempt.Response)
	s.log.InfoContext(ctx, "試着画像を生成しました", "model", attempt.Model)
	return &analysis, image, nil
}

// Edit は既存の画像に対する単発の編集呼び出しです。
// パイプラインの事前状態には依存しません。
func (s *Stylist) Edit(ctx context.Context, image domain.ImageAsset, instruction string, ratio domain.AspectRatio) (*domain.ImageAsset, error) {
	contents, cfg := generator.BuildEditRequest(image, instruction, ratio)
	attempt, err := s.editRoute.Execute(ctx, s.inv, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("image edit failed: %w", err)
	}

	edited := generator.ExtractImage(attempt.Response)
	s.log.InfoContext(ctx, "編集画像を生成しました", "model", attempt.Model)
	return edited, nil
}

// Chat は会話履歴のスナップショットに対する単発のチャット呼び出しです。
// 履歴は読み取るだけで変更しません。新しいターンと応答の追記は
// 呼び出し側の責務です。
func (s *Stylist) Chat(ctx context.Context, history []domain.ConversationTurn, message string, opts domain.ChatOptions) (string, error) {
	contents, cfg := generator.BuildChatRequest(chatSystemPrompt, history, message, opts)
	attempt, err := s.chatRoute.Execute(ctx, s.inv, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return generator.ExtractText(attempt.Response), nil
}

// Transcribe は音声の文字起こしです。この呼び出し種別は常に
// 単一モデルで、退避方針を持ちません。
func (s *Stylist) Transcribe(ctx context.Context, clip domain.AudioClip) (string, error) {
	contents, cfg := generator.BuildTranscribeRequest(clip)
	resp, err := s.inv.Invoke(ctx, s.transcribeModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return generator.ExtractText(resp), nil
}
