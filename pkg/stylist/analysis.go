package stylist

import (
	"regexp"
	"strings"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
)

// AnalysisFallback は、対応するセクションのラベルが応答に見つからなかった
// ときにフィールドへ入る固定文言です。一部のセクションが欠けても
// 解析全体は失敗させず、残りを利用可能なまま返します。
const AnalysisFallback = "analysis unavailable"

// 各セクションを独立に切り出します。スコープは自セクションのラベルから
// 次の区切り（最終セクションは入力末尾）までです。
var (
	reInstructions = regexp.MustCompile(`(?s)###\s*INSTRUCTIONS\s*(.*?)\s*(?:###|\z)`)
	reStyling      = regexp.MustCompile(`(?s)###\s*STYLING NOTES\s*(.*?)\s*(?:###|\z)`)
	reTechnical    = regexp.MustCompile(`(?s)###\s*TECHNICAL JSON\s*(.*)\z`)
)

// ParseAnalysis はモデルの半構造化応答を AnalysisResult に分解します。
// この操作は決して失敗しません。最悪でも全フィールドが
// AnalysisFallback で埋まった結果を返します。
// TechnicalJSON は JSON として検証せず不透明なテキストのまま保持します。
func ParseAnalysis(raw string) domain.AnalysisResult {
	return domain.AnalysisResult{
		Instructions:  extractSection(raw, reInstructions),
		Styling:       extractSection(raw, reStyling),
		TechnicalJSON: extractSection(raw, reTechnical),
	}
}

func extractSection(raw string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return AnalysisFallback
	}
	return strings.TrimSpace(m[1])
}
