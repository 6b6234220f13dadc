package adapters

import (
	"context"

	"ap-merch-web/internal/domain"
)

// TextGenerator はメッセージ列から 1 件のテキストを生成します。
type TextGenerator interface {
	GenerateText(ctx context.Context, messages []domain.Message) (string, error)
}

// ImageGenerator はプロンプトから 1 枚の画像を生成し、取得可能な URL を返します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
}
