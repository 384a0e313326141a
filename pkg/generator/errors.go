package generator

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResult は、呼び出し自体は成功したものの抽出可能な画像が
// 含まれていなかったことを表します。画像生成系のルートでのみ
// フォールバックの引き金になります。
var ErrEmptyResult = errors.New("model response contained no image payload")

// IsCapabilityError は、別モデルへのフォールバックで解決しうる
// 能力不一致の失敗（権限拒否・モデル未発見）かどうかを判定します。
// それ以外（不正リクエスト、クォータ超過、ネットワーク障害など）は
// モデルを替えても解決しないため、フォールバック対象外です。
func IsCapabilityError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusForbidden || apiErr.Code == http.StatusNotFound {
			return true
		}
		if strings.Contains(apiErr.Message, "PERMISSION_DENIED") {
			return true
		}
		if strings.Contains(apiErr.Message, "not found") {
			return true
		}
		return false
	}

	// APIエラー以外（トランスポート層の失敗）は常に終局です。
	return false
}
