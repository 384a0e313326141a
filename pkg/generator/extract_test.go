package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractImage(t *testing.T) {
	t.Run("候補がない応答では nil を返すこと", func(t *testing.T) {
		assert.Nil(t, ExtractImage(nil))
		assert.Nil(t, ExtractImage(&genai.GenerateContentResponse{}))
		assert.Nil(t, ExtractImage(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		}))
	})

	t.Run("最初のインライン画像を data URI にできること", func(t *testing.T) {
		resp := imageResponse("image/png", []byte("A"))

		asset := ExtractImage(resp)
		require.NotNil(t, asset)
		assert.Equal(t, "data:image/png;base64,QQ==", asset.DataURI())
	})

	t.Run("テキストパーツを飛ばして画像パーツを拾うこと", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Here is your image:"},
						{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("fake")}},
					},
				},
			}},
		}

		asset := ExtractImage(resp)
		require.NotNil(t, asset)
		assert.Equal(t, "image/jpeg", asset.MIMEType)
		assert.Equal(t, []byte("fake"), asset.Data)
	})

	t.Run("MIMEタイプ未申告の場合は image/png を強制すること", func(t *testing.T) {
		resp := imageResponse("", []byte("fake"))

		asset := ExtractImage(resp)
		require.NotNil(t, asset)
		assert.Equal(t, "image/png", asset.MIMEType)
	})

	t.Run("テキストのみの応答では nil を返すこと", func(t *testing.T) {
		assert.Nil(t, ExtractImage(textResponse("no image here")))
	})
}

func TestExtractText(t *testing.T) {
	t.Run("テキストパーツを順に連結すること", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Hello, "},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("x")}},
						{Text: "world"},
					},
				},
			}},
		}
		assert.Equal(t, "Hello, world", ExtractText(resp))
	})

	t.Run("候補がない応答では空文字を返すこと", func(t *testing.T) {
		assert.Equal(t, "", ExtractText(nil))
		assert.Equal(t, "", ExtractText(&genai.GenerateContentResponse{}))
	})
}
