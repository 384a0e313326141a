package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// テスト用のダミー画像を作成するヘルパー
func createDummyImageData(t *testing.T, format string, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}

	if err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

// ノイズ画像はPNGがほぼ圧縮できないため、JPEG再圧縮の縮小効果を
// 確実に観測できます。
func createNoisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode noisy png: %v", err)
	}
	return buf.Bytes()
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := createDummyImageData(t, "png", 10, 10)

		got, err := CompressToJPEG(pngData, 75)
		require.NoError(t, err)
		require.NotEmpty(t, got)

		_, format, err := image.Decode(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		_, err := CompressToJPEG([]byte("this is not an image"), 75)
		assert.Error(t, err)
	})
}

func TestNormalizeForUpload(t *testing.T) {
	t.Run("上限内の画像は無変換で返ること", func(t *testing.T) {
		data := createDummyImageData(t, "png", 10, 10)

		got, err := NormalizeForUpload(data, len(data), 75)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("上限を超える画像はJPEGに再圧縮されること", func(t *testing.T) {
		data := createNoisyPNG(t, 200, 200)

		got, err := NormalizeForUpload(data, len(data)-1, 75)
		require.NoError(t, err)
		require.NotEqual(t, data, got)

		_, format, err := image.Decode(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("再圧縮しても収まらない場合は ErrTooLarge を返すこと", func(t *testing.T) {
		data := createDummyImageData(t, "png", 200, 200)

		_, err := NormalizeForUpload(data, 10, 75)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("画像でないデータはエラーになること", func(t *testing.T) {
		_, err := NormalizeForUpload(bytes.Repeat([]byte("x"), 100), 10, 75)
		assert.Error(t, err)
	})
}

func TestDimensions(t *testing.T) {
	t.Run("ヘッダーから寸法を読めること", func(t *testing.T) {
		data := createDummyImageData(t, "jpeg", 64, 48)

		w, h, err := Dimensions(data)
		require.NoError(t, err)
		assert.Equal(t, 64, w)
		assert.Equal(t, 48, h)
	})

	t.Run("画像でないデータはエラーになること", func(t *testing.T) {
		_, _, err := Dimensions([]byte("nope"))
		assert.Error(t, err)
	})
}
