package stylist

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockInvoker struct {
	invokeFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	models     []string
}

func (m *mockInvoker) Invoke(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.models = append(m.models, model)
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, model, contents, cfg)
	}
	return &genai.GenerateContentResponse{}, nil
}

func imageResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
			},
		}},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}
