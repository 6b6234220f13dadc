package pipeline

import (
	"context"
	"log/slog"

	"ap-merch-web/internal/domain"
)

// notify は公開完了を Slack に通知します。通知の失敗はステップの成否に影響させません。
func (p *MerchPipeline) notify(ctx context.Context, res PublishResult) {
	req := domain.NotificationRequest{
		TargetTitle:   res.Payload.Title,
		Category:      res.Payload.Category,
		Price:         res.Payload.Price,
		ImageURL:      res.Payload.ImageURL,
		ListingURL:    res.Listing.URL,
		ExecutionMode: p.executionMode(),
	}
	if err := p.slack.Notify(ctx, req); err != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", err)
	}
}

// notifyError は公開失敗を Slack に通知します。
func (p *MerchPipeline) notifyError(ctx context.Context, payload domain.Payload, opErr error) {
	category := payload.Category
	if category == "" {
		category = domain.CategoryNotAvailable
	}
	req := domain.NotificationRequest{
		TargetTitle:   payload.Title,
		Category:      category,
		Price:         payload.Price,
		ExecutionMode: p.executionMode(),
	}
	if err := p.slack.NotifyError(ctx, opErr, req); err != nil {
		slog.ErrorContext(ctx, "Failed to send error notification", "error", err)
	}
}

func (p *MerchPipeline) executionMode() string {
	return StepPublish + " / " + p.cfg.AIProvider
}
