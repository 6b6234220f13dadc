package builder

import (
	"context"
	"fmt"
	"strings"

	"ap-merch-web/internal/app"
	"ap-merch-web/internal/config"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// needsRemoteIO は GCS への読み書きが必要な設定かどうかを判定します。
// 画像の保存先バケット、または gs:// のカタログ指定がある場合に限ります。
func needsRemoteIO(cfg *config.Config) bool {
	return cfg.GCSBucket != "" || strings.HasPrefix(cfg.CatalogPath, "gs://")
}

// BuildRemoteIO は、GCS ベースの I/O コンポーネントを初期化します。
// 不要な構成では nil を返し、GCS の認証情報を要求しません。
func BuildRemoteIO(ctx context.Context, cfg *config.Config) (*app.RemoteIO, error) {
	if !needsRemoteIO(cfg) {
		return nil, nil
	}

	factory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS factory: %w", err)
	}
	r, err := factory.InputReader()
	if err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	w, err := factory.OutputWriter()
	if err != nil {
		return nil, fmt.Errorf("failed to create output writer: %w", err)
	}
	s, err := factory.URLSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to create URL signer: %w", err)
	}
	return &app.RemoteIO{
		Factory: factory,
		Reader:  r,
		Writer:  w,
		Signer:  s,
	}, nil
}
