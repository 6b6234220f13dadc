// Package metrics はワークフローの Prometheus メトリクスを提供します。
package metrics

import (
	"time"

	"ap-merch-web/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess はエラーなく終わったステップの outcome ラベルです。
const OutcomeSuccess = "success"

var (
	// StepTotal は outcome (success またはエラー種別) ごとのステップ実行回数です。
	StepTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merch",
			Name:      "step_total",
			Help:      "Total number of workflow step executions",
		},
		[]string{"step", "outcome"},
	)

	// StepDuration は外部 API 呼び出しを含むステップの所要時間です。
	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "merch",
			Name:      "step_duration_seconds",
			Help:      "Duration of workflow steps in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"step"},
	)

	// ListingLookupTotal は公開後の出品探索の結果ごとの回数です。
	ListingLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merch",
			Name:      "listing_lookup_total",
			Help:      "Total number of marketplace listing lookups",
		},
		[]string{"status"},
	)
)

// ObserveStep は start に開始したステップ 1 回分を記録します。
func ObserveStep(step string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = string(domain.KindOf(err))
	}
	StepTotal.WithLabelValues(step, outcome).Inc()
	StepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
}

// RecordListingLookup は出品探索の結果を記録します。
func RecordListingLookup(status domain.LookupStatus) {
	ListingLookupTotal.WithLabelValues(string(status)).Inc()
}
