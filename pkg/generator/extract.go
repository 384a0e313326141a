package generator

import (
	"strings"

	"google.golang.org/genai"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
)

// ExtractImage は応答の最初の候補からインライン画像を探します。
// 見つからない場合は nil を返します。これはエラーではなく
// 「何も生成されなかった」という正当な結果で、呼び出し側が
// 明示的に判定する必要があります。
func ExtractImage(resp *genai.GenerateContentResponse) *domain.ImageAsset {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil
	}

	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = defaultImageMIME
			}
			return &domain.ImageAsset{Data: part.InlineData.Data, MIMEType: mime}
		}
	}
	return nil
}

// ExtractText は応答の最初の候補のテキストパーツを連結して返します。
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
