package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// invocation は mockInvoker が記録する1回分の呼び出しです。
type invocation struct {
	model    string
	contents []*genai.Content
	cfg      *genai.GenerateContentConfig
}

type mockInvoker struct {
	invokeFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	calls      []invocation
}

func (m *mockInvoker) Invoke(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls = append(m.calls, invocation{model: model, contents: contents, cfg: cfg})
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, model, contents, cfg)
	}
	return &genai.GenerateContentResponse{}, nil
}

// callsFor は指定モデルへの呼び出し回数を返します。
func (m *mockInvoker) callsFor(model string) int {
	n := 0
	for _, c := range m.calls {
		if c.model == model {
			n++
		}
	}
	return n
}

// imageResponse はインライン画像を1つ含む応答を組み立てます。
func imageResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
			},
		}},
	}
}

// textResponse はテキストのみの応答を組み立てます。
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}
