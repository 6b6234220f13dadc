package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const opPrintify = "printify products"

// PrintifyAdapter はショップの商品一覧を取得します。
type PrintifyAdapter struct {
	httpClient httpkit.Doer
	baseURL    string
	pageSize   int
}

func NewPrintifyAdapter(httpClient httpkit.Doer, baseURL string, pageSize int) *PrintifyAdapter {
	return &PrintifyAdapter{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
	}
}

type printifyProductsResponse struct {
	Data []domain.PODProduct `json:"data"`
}

// ListProducts は先頭ページのみを取得します。ページングは行いません。
func (a *PrintifyAdapter) ListProducts(ctx context.Context, token, shopID string) ([]domain.PODProduct, error) {
	if token == "" || shopID == "" {
		return nil, domain.ConfigError(opPrintify, "Printify credentials are not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/shops/%s/products.json?limit=%s",
		a.baseURL, url.PathEscape(shopID), strconv.Itoa(a.pageSize))

	var resp printifyProductsResponse
	err := doJSON(ctx, a.httpClient, jsonRequest{
		op:      opPrintify,
		method:  http.MethodGet,
		url:     endpoint,
		headers: map[string]string{"Authorization": "Bearer " + token},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
