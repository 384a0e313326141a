package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NormalizeForUpload はリクエストサイズ上限に収まるよう、上限を超える
// 画像だけをJPEGへ再圧縮します。上限内の画像はそのまま返します。
// 再圧縮後も上限を超える場合はエラーです（コア側は分割送信を行いません）。
func NormalizeForUpload(data []byte, maxBytes int, quality int) ([]byte, error) {
	if len(data) <= maxBytes {
		return data, nil
	}

	compressed, err := CompressToJPEG(data, quality)
	if err != nil {
		return nil, err
	}
	if len(compressed) > maxBytes {
		return nil, ErrTooLarge
	}
	return compressed, nil
}
