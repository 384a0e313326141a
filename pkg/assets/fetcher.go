// Package assets は URL 指定された参照画像の取得を担当します。
// http/https は HTTP クライアント経由、gs:// はリモートリーダー経由で
// 読み込み、試着コアへ渡せる ImageAsset に変換します。
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
)

// Fetcher は参照画像の取得器です。reader は nil を許容し、その場合
// gs:// スキームは未対応エラーになります。
type Fetcher struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	log        *slog.Logger
}

// NewFetcher は依存関係を注入して Fetcher を初期化します。
func NewFetcher(httpClient httpkit.ClientInterface, reader remoteio.InputReader, log *slog.Logger) (*Fetcher, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{httpClient: httpClient, reader: reader, log: log}, nil
}

// Fetch は URL から画像を取得して ImageAsset に変換します。
// 画像以外の MIME タイプはエラーです。
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.ImageAsset, error) {
	data, err := f.fetchBytes(ctx, rawURL)
	if err != nil {
		return domain.ImageAsset{}, err
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageAsset{}, fmt.Errorf("取得したデータが画像ではありません (MIME: %s)", mimeType)
	}
	return domain.ImageAsset{Data: data, MIMEType: mimeType}, nil
}

func (f *Fetcher) fetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		if f.reader == nil {
			return nil, fmt.Errorf("gs:// の読み込みには InputReader の設定が必要です")
		}
		rc, err := f.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("gs:// の読み込みに失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		f.log.WarnContext(ctx, "安全ではないURLをブロックしました", "url", rawURL, "error", err)
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return f.httpClient.FetchBytes(ctx, rawURL)
}

// IsSafeURL は SSRF 対策として URL を検証します。許可スキームは
// http/https のみで、プライベートIP・ループバック・リンクローカルへの
// アクセスを拒否します。
func IsSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolved
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}
	return true, nil
}
