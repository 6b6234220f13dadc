package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/merch"
	"ap-merch-web/internal/metrics"
	"ap-merch-web/internal/niche"
)

const (
	StepNiche   = "niche"
	StepCatalog = "catalog"
	StepSeed    = "seed"
	StepIdea    = "idea"
	StepImage   = "image"
	StepPublish = "publish"
)

// PublishResult は公開ステップの結果です。出品探索の結果は公開の成否とは独立しています。
type PublishResult struct {
	Payload domain.Payload
	Listing domain.ListingLookup
}

// SelectNiche は改行区切りの候補から 1 件を選び、HotNiche に設定します。
func (p *MerchPipeline) SelectNiche(ctx context.Context, s *domain.Session, creds domain.Credentials, candidatesText string) (res niche.Result, err error) {
	defer observe(StepNiche, time.Now(), &err)

	candidates := niche.ParseCandidates(candidatesText)
	if len(candidates) == 0 {
		return niche.Result{}, domain.ConfigError(StepNiche, "ニッチ候補を 1 行に 1 件ずつ入力してください")
	}

	selector, err := p.clients.NicheSelector(creds)
	if err != nil {
		return niche.Result{}, err
	}

	res, err = selector.Select(ctx, candidates)
	if err != nil {
		return niche.Result{}, err
	}

	s.HotNiche = res.Selected
	slog.InfoContext(ctx, "Niche selected", "niche", res.Selected, "source", p.cfg.NicheSource, "candidates", len(candidates))
	return res, nil
}

// PickCatalogNiche はカタログ内のニッチを HotNiche に設定します。
func (p *MerchPipeline) PickCatalogNiche(s *domain.Session, phrase string) (err error) {
	defer observe(StepCatalog, time.Now(), &err)

	phrase = strings.TrimSpace(phrase)
	if !p.catalog.Contains(phrase) {
		return domain.ConfigError(StepCatalog, "カタログからニッチを選択してください")
	}
	s.HotNiche = phrase
	return nil
}

// RollSeed はランダムなシード文を生成して Seed に設定します。
func (p *MerchPipeline) RollSeed(s *domain.Session) string {
	defer observe(StepSeed, time.Now(), nil)

	s.Seed = p.seeds.Roll()
	return s.Seed
}

// GenerateIdea はアイデアを生成し、商品タイプを判定して保存します。
// 新しいアイデアに古い画像が紐付かないよう、成功時は ImageURL を消去します。
func (p *MerchPipeline) GenerateIdea(ctx context.Context, s *domain.Session, creds domain.Credentials) (err error) {
	defer observe(StepIdea, time.Now(), &err)

	phrase, err := p.ideaContext(s)
	if err != nil {
		return err
	}

	gen, err := p.clients.TextGenerator(ctx, creds)
	if err != nil {
		return err
	}

	text, err := gen.GenerateText(ctx, merch.IdeaMessages(phrase))
	if err != nil {
		return domain.AsStepError(StepIdea, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.EmptyError(StepIdea, "アイデアが空で返されました")
	}

	s.Idea = text
	s.ProductType = p.classifier.Classify(text)
	s.ImageURL = ""

	slog.InfoContext(ctx, "Idea generated", "product_type", s.ProductType, "context", phrase)
	return nil
}

// ideaContext は IDEA_CONTEXT の設定に従ってプロンプトに添えるフレーズを決めます。
func (p *MerchPipeline) ideaContext(s *domain.Session) (string, error) {
	switch p.cfg.IdeaContext {
	case config.IdeaContextNiche:
		if s.HotNiche == "" {
			return "", domain.ConfigError(StepIdea, "先にニッチを選択してください")
		}
		return s.HotNiche, nil
	case config.IdeaContextSeed:
		if s.Seed == "" {
			return "", domain.ConfigError(StepIdea, "先にシードを生成してください")
		}
		return s.Seed, nil
	default:
		if s.HotNiche != "" {
			return s.HotNiche, nil
		}
		return s.Seed, nil
	}
}

// GenerateImage はアイデアと商品タイプから画像を 1 枚生成し、URL を保存します。
func (p *MerchPipeline) GenerateImage(ctx context.Context, s *domain.Session, creds domain.Credentials) (err error) {
	defer observe(StepImage, time.Now(), &err)

	if !s.CanGenerateImage() {
		return domain.ConfigError(StepImage, "先にアイデアを生成してください")
	}

	gen, err := p.clients.ImageGenerator(ctx, creds)
	if err != nil {
		return err
	}

	url, err := gen.GenerateImage(ctx, domain.ImageRequest{
		Prompt:  merch.ImagePrompt(s.ProductType, s.Idea),
		Size:    p.cfg.ImageSize,
		Quality: p.cfg.ImageQuality,
	})
	if err != nil {
		return domain.AsStepError(StepImage, err)
	}
	if url == "" {
		return domain.EmptyError(StepImage, "画像 URL が返されませんでした")
	}

	s.ImageURL = url
	slog.InfoContext(ctx, "Image generated", "product_type", s.ProductType)
	return nil
}

// Publish はペイロードを Webhook に 1 回だけ送信します。
// 送信成功後の出品探索は失敗しても公開結果に影響しません。
func (p *MerchPipeline) Publish(ctx context.Context, s *domain.Session, creds domain.Credentials) (res PublishResult, err error) {
	defer observe(StepPublish, time.Now(), &err)

	if creds.WebhookURL == "" {
		return PublishResult{}, domain.ConfigError(StepPublish, "Webhook URL を入力してください")
	}
	if !s.CanPublish() {
		return PublishResult{}, domain.ConfigError(StepPublish, "先にアイデアと画像を生成してください")
	}

	payload := domain.NewPayload(s.Idea, s.ImageURL, s.ProductType, merch.PriceOf(string(s.ProductType)))
	if err := payload.Validate(); err != nil {
		return PublishResult{}, &domain.StepError{Kind: domain.KindConfig, Op: StepPublish, Message: "invalid payload", Err: err}
	}

	if !config.IsSecureURL(creds.WebhookURL) {
		slog.WarnContext(ctx, "Webhook URL is not HTTPS", "title", payload.Title)
	}

	if err := p.clients.Webhook().Deliver(ctx, creds.WebhookURL, payload); err != nil {
		p.notifyError(ctx, payload, err)
		return PublishResult{}, domain.AsStepError(StepPublish, err)
	}
	slog.InfoContext(ctx, "Drop published", "title", payload.Title, "category", payload.Category, "price", payload.Price)

	res = PublishResult{Payload: payload, Listing: p.lookupListing(ctx, creds, payload.Title)}
	p.notify(ctx, res)
	return res, nil
}

func observe(step string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	metrics.ObserveStep(step, start, err)
}
