// Package pipeline はフォームから起動される各ステップ (ニッチ選択・アイデア・画像・公開) を実行します。
// 各ステップはセッションをポインタで受け取り、成功した場合のみ書き換えます。
package pipeline

import (
	"context"
	"errors"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/merch"
	"ap-merch-web/internal/niche"
)

// Clients はリクエストごとの認証情報から外部 API クライアントを用意します。
// 認証情報が足りない場合は domain.KindConfig のエラーを返し、通信は行いません。
type Clients interface {
	TextGenerator(ctx context.Context, creds domain.Credentials) (adapters.TextGenerator, error)
	ImageGenerator(ctx context.Context, creds domain.Credentials) (adapters.ImageGenerator, error)
	NicheSelector(creds domain.Credentials) (niche.Selector, error)
	Products() ProductLister
	Webhook() Deliverer
}

// ProductLister はプリントオンデマンドの商品一覧を取得します。
type ProductLister interface {
	ListProducts(ctx context.Context, token, shopID string) ([]domain.PODProduct, error)
}

// Deliverer は Webhook にペイロードを届けます。
type Deliverer interface {
	Deliver(ctx context.Context, url string, payload domain.Payload) error
}

// MerchPipeline はドロップ作成の各ステップを保持します。
type MerchPipeline struct {
	cfg        *config.Config
	clients    Clients
	catalog    config.Catalog
	seeds      *merch.SeedRoller
	classifier *merch.Classifier
	slack      adapters.SlackNotifier
}

func NewMerchPipeline(
	cfg *config.Config,
	clients Clients,
	catalog config.Catalog,
	seeds *merch.SeedRoller,
	slack adapters.SlackNotifier,
) (*MerchPipeline, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if clients == nil {
		return nil, errors.New("clients are required")
	}
	if seeds == nil {
		return nil, errors.New("seed roller is required")
	}
	if slack == nil {
		return nil, errors.New("slack notifier is required")
	}
	return &MerchPipeline{
		cfg:        cfg,
		clients:    clients,
		catalog:    catalog,
		seeds:      seeds,
		classifier: merch.NewClassifier(merch.DefaultRules, domain.ProductGeneric),
		slack:      slack,
	}, nil
}

// Catalog はフォームに表示するニッチカタログを返します。
func (p *MerchPipeline) Catalog() config.Catalog {
	return p.catalog
}
