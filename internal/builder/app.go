package builder

import (
	"context"
	"fmt"
	"log/slog"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/app"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/merch"
	"ap-merch-web/internal/pipeline"
	"ap-merch-web/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const sessionCookieName = "ap-merch-state"

// BuildContainer は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildContainer(ctx context.Context, cfg *config.Config) (container *app.Container, err error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// 2. I/O インフラ (GCS) の初期化
	rio, err := BuildRemoteIO(ctx, cfg)
	if err != nil {
		return nil, err
	}
	container = &app.Container{Config: cfg, RemoteIO: rio, HTTPClient: httpClient}
	defer func() {
		if err != nil {
			container.Close()
			container = nil
		}
	}()

	// 3. セッションストア
	container.Sessions, container.RedisClient, err = buildSessions(ctx, cfg, httpClient)
	if err != nil {
		return container, err
	}

	// 4. アダプターの初期化
	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return container, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}
	container.SlackNotifier = slack

	// 5. パイプライン
	container.Pipeline, err = BuildPipeline(ctx, cfg, rio, slack)
	if err != nil {
		return container, err
	}

	return container, nil
}

// BuildPipeline はカタログ、シード、外部 API クライアントからパイプラインを組み立てます。
// rio が nil の場合、gs:// のカタログと Gemini の画像生成は利用できません。
func BuildPipeline(ctx context.Context, cfg *config.Config, rio *app.RemoteIO, slack adapters.SlackNotifier) (*pipeline.MerchPipeline, error) {
	var reader remoteio.InputReader
	if rio != nil {
		reader = rio.Reader
	}
	catalog, err := config.LoadCatalog(ctx, reader, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	seeds, err := merch.NewSeedRoller(catalog.Seeds.Adjectives, catalog.Seeds.Audiences, catalog.Seeds.Objects, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create seed roller: %w", err)
	}

	var imageStore adapters.ImageStore
	if rio != nil && cfg.GCSBucket != "" {
		imageStore = adapters.NewGCSImageStore(rio.Writer, rio.Signer, cfg.GetGCSObjectURL(cfg.GetImageDir()), cfg.ImageURLExpiration)
	}

	p, err := pipeline.NewMerchPipeline(cfg, NewClientFactory(cfg, imageStore), catalog, seeds, slack)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return p, nil
}

// buildSessions は REDIS_URL があれば Redis、なければプロセス内メモリにセッション状態を置きます。
func buildSessions(ctx context.Context, cfg *config.Config, httpClient httpkit.ClientInterface) (*session.Manager, *redis.Client, error) {
	var store session.Store
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		redisClient = client
		store = session.NewRedisStore(client, cfg.SessionTTL)
		slog.Info("Using Redis session store")
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		slog.Info("Using in-memory session store")
	}

	mgr, err := session.NewManager(store, session.ManagerConfig{
		CookieName: sessionCookieName,
		AuthKey:    []byte(cfg.SessionSecret),
		EncryptKey: []byte(cfg.SessionEncryptKey),
		Secure:     httpClient.IsSecureServiceURL(cfg.ServiceURL),
		TTL:        cfg.SessionTTL,
	})
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	return mgr, redisClient, nil
}
