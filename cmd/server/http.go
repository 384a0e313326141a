package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// httpFetcher は assets.Fetcher が要求する FetchBytes を満たす
// 最小限のHTTPクライアントです。
type httpFetcher struct {
	httpkit.ClientInterface
	client *http.Client
}

func newHTTPFetcher() *httpFetcher {
	return &httpFetcher{client: &http.Client{Timeout: 60 * time.Second}}
}

func (f *httpFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗しました: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("取得に失敗しました: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
