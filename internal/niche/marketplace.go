package niche

import (
	"context"
	"log/slog"

	"ap-merch-web/internal/domain"

	"golang.org/x/time/rate"
)

// ListingCounter はキーワードに一致する出品中リスティングの件数を返します。
type ListingCounter interface {
	CountActiveListings(ctx context.Context, keyword string) (int, error)
}

// MarketplaceSelector は検索結果件数が最大の候補を選びます。
type MarketplaceSelector struct {
	counter ListingCounter
	limiter *rate.Limiter
}

// NewMarketplaceSelector は検索 API への呼び出し間隔を limiter で制御するセレクタを生成します。
// limiter が nil の場合は間隔制御を行いません。
func NewMarketplaceSelector(counter ListingCounter, limiter *rate.Limiter) *MarketplaceSelector {
	return &MarketplaceSelector{counter: counter, limiter: limiter}
}

// Select は候補を入力順に問い合わせ、件数が最大のものを返します。
// 同数の場合は先に現れた候補が勝ちます。
func (s *MarketplaceSelector) Select(ctx context.Context, candidates []string) (Result, error) {
	if err := requireCandidates(candidates); err != nil {
		return Result{}, err
	}

	scores := make([]Score, 0, len(candidates))
	best := -1
	for i, c := range candidates {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return Result{}, domain.TransportError(opSelect, err)
			}
		}
		n, err := s.counter.CountActiveListings(ctx, c)
		if err != nil {
			return Result{}, domain.AsStepError(opSelect, err)
		}
		slog.DebugContext(ctx, "Marketplace listing count", "keyword", c, "count", n)

		scores = append(scores, Score{Phrase: c, Value: float64(n)})
		if best < 0 || scores[i].Value > scores[best].Value {
			best = i
		}
	}

	return Result{Selected: scores[best].Phrase, Scores: scores}, nil
}
