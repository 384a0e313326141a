package domain

import (
	"encoding/base64"
	"time"
)

// ImageAsset は不透明な画像バイナリとその MIME タイプを保持します。
// 生成後・取得後に内容を書き換えないことを前提とした値オブジェクトです。
type ImageAsset struct {
	Data     []byte
	MIMEType string
}

// DataURI はブラウザでそのまま表示できる data URI 形式の文字列を返します。
func (a ImageAsset) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// IsEmpty はペイロードを持たない場合に true を返します。
func (a ImageAsset) IsEmpty() bool {
	return len(a.Data) == 0
}

// AudioClip は文字起こし対象の音声バイナリです。
type AudioClip struct {
	Data     []byte
	MIMEType string
}

// ImageQuality は生成画像の解像度クラスです。
// プライマリモデル専用のノブであり、フォールバックモデルへは転送されません。
type ImageQuality string

const (
	Quality1K ImageQuality = "1K"
	Quality2K ImageQuality = "2K"
	Quality4K ImageQuality = "4K"
)

// AnalysisResult は分析ステップの出力を3つの区画に分けて保持します。
// TechnicalJSON は JSON を称するテキストですが、このレイヤーでは
// 検証せず不透明なまま保持します（表示層の責務）。
type AnalysisResult struct {
	Instructions  string
	Styling       string
	TechnicalJSON string
}

// Role は会話ターンの発話者です。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn は会話履歴の1ターンです。履歴は呼び出し側が所有し、
// セッション内では追記のみ・編集不可の規約で扱います。
type ConversationTurn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// ChatOptions はチャット呼び出しの任意機能フラグです。
// 検索拡張と拡張思考は互いに独立して切り替えられます。
type ChatOptions struct {
	UseSearch   bool
	UseThinking bool
}
