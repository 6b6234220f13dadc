package adapters

import (
	"context"
	"net/http"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const opWebhook = "webhook"

// WebhookAdapter は自動化 Webhook にペイロードを 1 回だけ POST します。
// Webhook URL はフォームから入力されるため、送信前に内部ネットワーク宛てでないか検証します。
type WebhookAdapter struct {
	client *httpkit.Client
}

// NewWebhookAdapter は SSRF 対策付きの httpkit クライアントを使います。
// ローカル開発やテストでは httpkit.WithSkipNetworkValidation(true) を渡します。
func NewWebhookAdapter(timeout time.Duration, opts ...httpkit.ClientOption) *WebhookAdapter {
	return &WebhookAdapter{client: httpkit.New(timeout, opts...)}
}

// Deliver は HTTP 200 のみを成功とみなします。それ以外はステータスと本文を含むエラーです。
func (a *WebhookAdapter) Deliver(ctx context.Context, url string, payload domain.Payload) error {
	if url == "" {
		return domain.ConfigError(opWebhook, "webhook URL is not configured")
	}
	if !a.client.SkipNetworkValidation {
		if ok, err := a.client.IsSafeURL(url); !ok {
			return &domain.StepError{Kind: domain.KindConfig, Op: opWebhook, Message: "webhook URL points to a restricted network", Err: err}
		}
	}
	return doJSON(ctx, a.client, jsonRequest{
		op:     opWebhook,
		method: http.MethodPost,
		url:    url,
		body:   payload,
	}, nil)
}
