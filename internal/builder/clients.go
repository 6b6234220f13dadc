package builder

import (
	"context"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/niche"
	"ap-merch-web/internal/pipeline"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/time/rate"
)

// ClientFactory はリクエストごとの認証情報から外部 API アダプターを組み立てます。
// 認証情報以外 (タイムアウト、画像ストア、レート制限) はプロセス全体で共有します。
type ClientFactory struct {
	cfg        *config.Config
	httpClient *httpkit.Client
	imageStore adapters.ImageStore
	webhook    *adapters.WebhookAdapter
	products   *adapters.PrintifyAdapter
	limiter    *rate.Limiter
}

// NewClientFactory は imageStore が nil の場合、Gemini の画像生成を設定エラーとして扱います。
// 外部 API と Webhook への通信は SSRF 対策付きの httpkit クライアントを通します。
// SKIP_NETWORK_VALIDATION が有効な場合のみ内部ネットワークへの接続を許可します。
func NewClientFactory(cfg *config.Config, imageStore adapters.ImageStore) *ClientFactory {
	opts := []httpkit.ClientOption{httpkit.WithSkipNetworkValidation(cfg.SkipNetworkValidation)}
	httpClient := httpkit.New(cfg.HTTPTimeout, opts...)
	return &ClientFactory{
		cfg:        cfg,
		httpClient: httpClient,
		imageStore: imageStore,
		webhook:    adapters.NewWebhookAdapter(cfg.WebhookTimeout, opts...),
		products:   adapters.NewPrintifyAdapter(httpClient, cfg.PrintifyBaseURL, cfg.PrintifyPageSize),
		limiter:    rate.NewLimiter(rate.Every(cfg.NicheRateLimit), 1),
	}
}

var _ pipeline.Clients = (*ClientFactory)(nil)

func (f *ClientFactory) TextGenerator(ctx context.Context, creds domain.Credentials) (adapters.TextGenerator, error) {
	if creds.AIKey == "" {
		return nil, domain.ConfigError(pipeline.StepIdea, "AI の API キーを入力してください")
	}
	if f.cfg.AIProvider == config.ProviderGemini {
		return f.gemini(ctx, creds.AIKey)
	}
	return f.openAI(creds.AIKey), nil
}

func (f *ClientFactory) ImageGenerator(ctx context.Context, creds domain.Credentials) (adapters.ImageGenerator, error) {
	if creds.AIKey == "" {
		return nil, domain.ConfigError(pipeline.StepImage, "AI の API キーを入力してください")
	}
	if f.cfg.AIProvider == config.ProviderGemini {
		if f.imageStore == nil {
			return nil, domain.ConfigError(pipeline.StepImage, "画像の保存先 (GCS_BUCKET) が設定されていません")
		}
		return f.gemini(ctx, creds.AIKey)
	}
	return f.openAI(creds.AIKey), nil
}

// NicheSelector は NICHE_SOURCE に応じてマーケットプレイス検索か Google Trends のセレクタを返します。
func (f *ClientFactory) NicheSelector(creds domain.Credentials) (niche.Selector, error) {
	if f.cfg.NicheSource == config.NicheSourceEtsy {
		if creds.EtsyAPIKey == "" {
			return nil, domain.ConfigError(pipeline.StepNiche, "Etsy の API キーを入力してください")
		}
		etsy := adapters.NewEtsyAdapter(f.httpClient, f.cfg.EtsyBaseURL, creds.EtsyAPIKey)
		return niche.NewMarketplaceSelector(etsy, f.limiter), nil
	}

	if creds.TrendsAPIKey == "" {
		return nil, domain.ConfigError(pipeline.StepNiche, "Trends の API キーを入力してください")
	}
	trends := adapters.NewTrendsAdapter(f.httpClient, f.cfg.TrendsBaseURL, creds.TrendsAPIKey)
	return niche.NewTrendSelector(trends), nil
}

func (f *ClientFactory) Products() pipeline.ProductLister {
	return f.products
}

func (f *ClientFactory) Webhook() pipeline.Deliverer {
	return f.webhook
}

func (f *ClientFactory) openAI(apiKey string) *adapters.OpenAIAdapter {
	return adapters.NewOpenAIAdapter(f.httpClient, adapters.OpenAIConfig{
		APIKey:     apiKey,
		BaseURL:    f.cfg.OpenAIBaseURL,
		ChatModel:  f.cfg.OpenAIChatModel,
		ImageModel: f.cfg.OpenAIImageModel,
	})
}

func (f *ClientFactory) gemini(ctx context.Context, apiKey string) (*adapters.GeminiAdapter, error) {
	a, err := adapters.NewGeminiAdapter(ctx, adapters.GeminiConfig{
		APIKey:     apiKey,
		Model:      f.cfg.GeminiModel,
		ImageModel: f.cfg.GeminiImageModel,
	}, f.imageStore)
	if err != nil {
		return nil, domain.TransportError("gemini", err)
	}
	return a, nil
}
