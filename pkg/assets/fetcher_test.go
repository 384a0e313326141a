package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockHTTPClient struct {
	httpkit.ClientInterface
	data []byte
	err  error
	urls []string
}

func (m *mockHTTPClient) FetchBytes(_ context.Context, url string) ([]byte, error) {
	m.urls = append(m.urls, url)
	return m.data, m.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("HTTPで取得した画像を ImageAsset にできること", func(t *testing.T) {
		httpMock := &mockHTTPClient{data: pngBytes(t)}
		f, err := NewFetcher(httpMock, nil, nil)
		require.NoError(t, err)

		// TEST-NET のグローバルIPを使い、名前解決を避ける
		asset, err := f.Fetch(ctx, "http://203.0.113.5/garment.png")

		require.NoError(t, err)
		assert.Equal(t, "image/png", asset.MIMEType)
		assert.Equal(t, []string{"http://203.0.113.5/garment.png"}, httpMock.urls)
	})

	t.Run("画像でないデータはエラーになること", func(t *testing.T) {
		httpMock := &mockHTTPClient{data: []byte("<html>not an image</html>")}
		f, err := NewFetcher(httpMock, nil, nil)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "http://203.0.113.5/page.html")
		assert.Error(t, err)
	})

	t.Run("リーダー未設定では gs:// がエラーになること", func(t *testing.T) {
		f, err := NewFetcher(&mockHTTPClient{}, nil, nil)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "gs://bucket/object.png")
		assert.Error(t, err)
	})

	t.Run("HTTPクライアントは必須であること", func(t *testing.T) {
		_, err := NewFetcher(nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		safe bool
	}{
		{"httpsのグローバルIPは許可", "https://203.0.113.5/a.png", true},
		{"ftpスキームは拒否", "ftp://example.com/a.png", false},
		{"ループバックは拒否", "http://127.0.0.1/a.png", false},
		{"プライベートIPは拒否", "http://192.168.1.10/a.png", false},
		{"リンクローカルは拒否", "http://169.254.1.1/a.png", false},
		{"パース不能なURLは拒否", "://broken", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, err := IsSafeURL(tt.url)
			assert.Equal(t, tt.safe, safe)
			if !tt.safe {
				assert.Error(t, err)
			}
		})
	}
}
