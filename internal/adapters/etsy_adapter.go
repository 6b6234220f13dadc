package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const (
	opEtsySearch = "etsy search"

	// etsySearchLimit は 1 キーワードあたりの検索件数上限です。
	etsySearchLimit = 100
)

// EtsyAdapter はアクティブな出品を検索し、件数を数えます。
type EtsyAdapter struct {
	httpClient httpkit.Doer
	baseURL    string
	apiKey     string
}

func NewEtsyAdapter(httpClient httpkit.Doer, baseURL, apiKey string) *EtsyAdapter {
	return &EtsyAdapter{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type etsySearchResponse struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

// CountActiveListings は検索結果の件数 (len(results)) を返します。
func (a *EtsyAdapter) CountActiveListings(ctx context.Context, keyword string) (int, error) {
	if a.apiKey == "" {
		return 0, domain.ConfigError(opEtsySearch, "Etsy API key is not configured")
	}

	q := url.Values{}
	q.Set("keywords", keyword)
	q.Set("limit", strconv.Itoa(etsySearchLimit))
	q.Set("sort_on", "score")
	q.Set("sort_order", "desc")

	var resp etsySearchResponse
	err := doJSON(ctx, a.httpClient, jsonRequest{
		op:      opEtsySearch,
		method:  http.MethodGet,
		url:     a.baseURL + "/v3/application/listings/active?" + q.Encode(),
		headers: map[string]string{"x-api-key": a.apiKey},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return len(resp.Results), nil
}
