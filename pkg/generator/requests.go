package generator

import (
	"google.golang.org/genai"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
)

const (
	personImageLabel  = "This is the person."
	garmentImageLabel = "This is the garment to try on."

	transcribeInstruction = "Transcribe this audio exactly. Return only the spoken words, with no commentary."

	chatTemperature    = 0.7
	chatThinkingBudget = 32768
	defaultImageMIME   = "image/png"
)

// BuildAnalyzeRequest は分析呼び出しのパーツ列を組み立てます。
// 固定指示 → 人物画像 → ラベル → 衣服画像 → ラベル の順序は
// パーサー側のセクション契約と対になっています。設定ノブはありません。
func BuildAnalyzeRequest(systemPrompt string, person, garment domain.ImageAsset) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{
		genai.NewPartFromText(systemPrompt),
		imagePart(person),
		genai.NewPartFromText(personImageLabel),
		imagePart(garment),
		genai.NewPartFromText(garmentImageLabel),
	}
	return []*genai.Content{userContent(parts...)}, nil
}

// BuildGenerateRequest は試着画像生成のリクエストを組み立てます。
// quality はプライマリモデル専用で、フォールバック時は Route.Degrade が
// ImageSize を取り除きます。
func BuildGenerateRequest(instructions string, person domain.ImageAsset, ratio domain.AspectRatio, quality domain.ImageQuality) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{
		genai.NewPartFromText(instructions),
		imagePart(person),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(ratio),
			ImageSize:   string(quality),
		},
	}
	return []*genai.Content{userContent(parts...)}, cfg
}

// BuildEditRequest は既存画像への編集指示リクエストを組み立てます。
// 品質ノブは存在せず、縦横比のみ指定できます。
func BuildEditRequest(image domain.ImageAsset, instruction string, ratio domain.AspectRatio) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{
		imagePart(image),
		genai.NewPartFromText(instruction),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(ratio),
		},
	}
	return []*genai.Content{userContent(parts...)}, cfg
}

// BuildChatRequest は会話履歴のスナップショットと新しい発話から
// チャットリクエストを組み立てます。履歴はここでは一切変更しません。
// 検索拡張と思考バジェットは互いに独立したフラグです。
func BuildChatRequest(systemPrompt string, history []domain.ConversationTurn, message string, opts domain.ChatOptions) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromText(turn.Text)}, role))
	}
	contents = append(contents, userContent(genai.NewPartFromText(message)))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: userContent(genai.NewPartFromText(systemPrompt)),
		Temperature:       float32Ptr(chatTemperature),
	}
	if opts.UseSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if opts.UseThinking {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: int32Ptr(chatThinkingBudget)}
	}
	return contents, cfg
}

// BuildTranscribeRequest は音声1件の文字起こしリクエストを組み立てます。
func BuildTranscribeRequest(clip domain.AudioClip) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: clip.MIMEType, Data: clip.Data}},
		genai.NewPartFromText(transcribeInstruction),
	}
	return []*genai.Content{userContent(parts...)}, nil
}

func userContent(parts ...*genai.Part) *genai.Content {
	return genai.NewContentFromParts(parts, genai.RoleUser)
}

func imagePart(a domain.ImageAsset) *genai.Part {
	mime := a.MIMEType
	if mime == "" {
		mime = defaultImageMIME
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: a.Data}}
}
