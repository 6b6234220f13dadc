package niche

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ap-merch-web/internal/domain"
)

const (
	// MaxTrendCandidates はトレンド API に一度に渡せる候補数の上限です。
	MaxTrendCandidates = 5
	// MomentumWindow は勢いの計算に使う先頭・末尾のサンプル数です。
	MomentumWindow = 7
)

// TrendSource は過去 30 日間の関心度推移をキーワードごとに返します。
type TrendSource interface {
	InterestOverTime(ctx context.Context, keywords []string) (map[string][]float64, error)
}

// TrendSelector は勢い (直近平均 - 初期平均) が最大の候補を選びます。
type TrendSelector struct {
	source TrendSource
}

func NewTrendSelector(source TrendSource) *TrendSelector {
	return &TrendSelector{source: source}
}

// Select は先頭 MaxTrendCandidates 件の候補について勢いを計算し、降順の先頭を返します。
// トレンド API はカンマ区切りで複数キーワードを受け取るため、カンマを含む候補は設定エラーです。
func (s *TrendSelector) Select(ctx context.Context, candidates []string) (Result, error) {
	if err := requireCandidates(candidates); err != nil {
		return Result{}, err
	}
	if len(candidates) > MaxTrendCandidates {
		candidates = candidates[:MaxTrendCandidates]
	}
	for _, c := range candidates {
		if strings.Contains(c, ",") {
			return Result{}, domain.ConfigError(opSelect, fmt.Sprintf("トレンドの候補にカンマは使えません: %q", c))
		}
	}

	series, err := s.source.InterestOverTime(ctx, candidates)
	if err != nil {
		return Result{}, domain.AsStepError(opSelect, err)
	}
	if !hasSamples(series) {
		return Result{}, domain.EmptyError(opSelect, "トレンドデータが取得できませんでした")
	}

	scores := RankByMomentum(candidates, series)
	return Result{Selected: scores[0].Phrase, Scores: scores}, nil
}

// Momentum は末尾 MomentumWindow 件の平均から先頭 MomentumWindow 件の平均を引いた値です。
// サンプル数が窓より少ない場合は存在する分だけで平均を取ります。
func Momentum(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	w := min(MomentumWindow, len(samples))
	return mean(samples[len(samples)-w:]) - mean(samples[:w])
}

// RankByMomentum は候補を勢いの降順に並べます。同値の場合は入力順を維持します。
func RankByMomentum(candidates []string, series map[string][]float64) []Score {
	scores := make([]Score, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, Score{Phrase: c, Value: Momentum(series[c])})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
	return scores
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func hasSamples(series map[string][]float64) bool {
	for _, s := range series {
		if len(s) > 0 {
			return true
		}
	}
	return false
}
