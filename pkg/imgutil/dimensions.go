package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// ErrTooLarge は再圧縮後もサイズ上限を超える画像に対して返されます。
var ErrTooLarge = errors.New("image exceeds maximum request size even after compression")

// Dimensions は画像ヘッダーだけをデコードしてピクセル寸法を返します。
// 縦横比の自動分類に使います。
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("画像寸法の取得に失敗しました: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
