// Package niche は候補フレーズの中から最も勢いのあるニッチを選びます。
package niche

import (
	"context"
	"strings"

	"ap-merch-web/internal/domain"
)

const opSelect = "niche"

// Score は候補フレーズとその評価値です。
type Score struct {
	Phrase string
	Value  float64
}

// Result は選択されたフレーズと、全候補の評価値です。
type Result struct {
	Selected string
	Scores   []Score
}

// Selector は候補リストから 1 件のフレーズを選ぶコンポーネントです。
type Selector interface {
	Select(ctx context.Context, candidates []string) (Result, error)
}

// ParseCandidates は改行区切りの入力を前後空白を除いた候補リストに変換します。
// 空行は読み飛ばし、入力順を維持します。
func ParseCandidates(text string) []string {
	var res []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

func requireCandidates(candidates []string) error {
	if len(candidates) == 0 {
		return domain.ConfigError(opSelect, "少なくとも 1 件のニッチ候補を入力してください")
	}
	return nil
}
