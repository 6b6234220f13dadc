package adapters

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const (
	opTrends = "google trends"

	// trendsWindow は全世界・直近 30 日の固定ウィンドウです。
	trendsWindow = "today 1-m"
)

// TrendsAdapter は SerpApi の Google Trends エンジンから時系列を取得します。
type TrendsAdapter struct {
	httpClient httpkit.Doer
	baseURL    string
	apiKey     string
}

func NewTrendsAdapter(httpClient httpkit.Doer, baseURL, apiKey string) *TrendsAdapter {
	return &TrendsAdapter{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type trendsResponse struct {
	InterestOverTime struct {
		TimelineData []struct {
			Date        string `json:"date"`
			PartialData bool   `json:"partial_data"`
			Values      []struct {
				Query          string  `json:"query"`
				ExtractedValue float64 `json:"extracted_value"`
			} `json:"values"`
		} `json:"timeline_data"`
	} `json:"interest_over_time"`
}

// InterestOverTime はキーワードごとのサンプル列を時系列順に返します。
// 部分データの印は値として扱わず、行は捨てません。
func (a *TrendsAdapter) InterestOverTime(ctx context.Context, keywords []string) (map[string][]float64, error) {
	if a.apiKey == "" {
		return nil, domain.ConfigError(opTrends, "trends API key is not configured")
	}

	q := url.Values{}
	q.Set("engine", "google_trends")
	q.Set("q", strings.Join(keywords, ","))
	q.Set("date", trendsWindow)
	q.Set("data_type", "TIMESERIES")
	q.Set("api_key", a.apiKey)

	var resp trendsResponse
	err := doJSON(ctx, a.httpClient, jsonRequest{
		op:     opTrends,
		method: http.MethodGet,
		url:    a.baseURL + "/search.json?" + q.Encode(),
	}, &resp)
	if err != nil {
		return nil, err
	}

	series := make(map[string][]float64, len(keywords))
	for _, row := range resp.InterestOverTime.TimelineData {
		for _, v := range row.Values {
			series[v.Query] = append(series[v.Query], v.ExtractedValue)
		}
	}
	return series, nil
}
