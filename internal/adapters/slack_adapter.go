package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

type SlackNotifier interface {
	Notify(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	slackClient *slack.Client
}

// NewSlackAdapter は webhookURL が空の場合、何も送らないアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}
	return &SlackAdapter{slackClient: client}, nil
}

// Notify はドロップ公開完了を通知します。
func (a *SlackAdapter) Notify(ctx context.Context, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.InfoContext(ctx, "Slackクライアントが初期化されていないため、通知をスキップします。", "title", req.TargetTitle)
		return nil
	}

	title := fmt.Sprintf("%s 新しいドロップを公開しました！", categoryIcon(req.Category))
	if err := a.slackClient.SendTextWithHeader(ctx, title, buildDropContent(req)); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "Slack に完了通知を送信しました。", "title", req.TargetTitle)
	return nil
}

// NotifyError は失敗したステップの詳細を通知します。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.InfoContext(ctx, "Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	// mrkdwn ではアスタリスクで囲むと太字になります。
	title := "❌ ドロップの公開に失敗しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*商品タイトル:* `%s`\n", req.TargetTitle))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n\n", req.ExecutionMode))
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))
	if req.Category != "" && req.Category != domain.CategoryNotAvailable {
		sb.WriteString(fmt.Sprintf("\n📍 *カテゴリ:* `%s`", req.Category))
	}

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}

func categoryIcon(category string) string {
	switch strings.ToLower(category) {
	case string(domain.ProductMug):
		return "☕"
	case string(domain.ProductTShirt):
		return "👕"
	case string(domain.ProductPoster):
		return "🖼️"
	default:
		return "🛍️"
	}
}

// buildDropContent は通知リクエストから Slack メッセージ本文を組み立てます。
func buildDropContent(req domain.NotificationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**商品タイトル:** `%s`\n", req.TargetTitle))
	sb.WriteString(fmt.Sprintf("**カテゴリ:** `%s`\n", req.Category))
	sb.WriteString(fmt.Sprintf("**価格:** `%s`\n", req.Price))
	sb.WriteString(fmt.Sprintf("**実行モード:** `%s`\n\n", req.ExecutionMode))

	if req.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("🖼️ **画像:** <%s|生成画像を開く>\n", req.ImageURL))
	}
	if req.ListingURL != "" {
		sb.WriteString(fmt.Sprintf("🛒 **出品ページ:** <%s|マーケットプレイスで見る>\n", req.ListingURL))
	}
	return sb.String()
}
