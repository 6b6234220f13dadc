package app

import (
	"log/slog"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/pipeline"
	"ap-merch-web/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Container はアプリケーションの依存関係（DIコンテナ）を保持します。
type Container struct {
	Config *config.Config

	// I/O and Storage (GCS_BUCKET 未設定時は nil)
	RemoteIO *RemoteIO

	// Session State
	Sessions    *session.Manager
	RedisClient *redis.Client

	// Business Logic
	Pipeline *pipeline.MerchPipeline

	// External Adapters
	HTTPClient    httpkit.ClientInterface
	SlackNotifier adapters.SlackNotifier
}

type RemoteIO struct {
	Factory remoteio.IOFactory
	Reader  remoteio.InputReader
	Writer  remoteio.OutputWriter
	Signer  remoteio.URLSigner
}

// Close は、Container が保持するすべての外部接続リソースを安全に解放します。
func (c *Container) Close() {
	if c.RemoteIO != nil && c.RemoteIO.Factory != nil {
		if err := c.RemoteIO.Factory.Close(); err != nil {
			slog.Error("failed to close IOFactory", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}
}
