package adapters

import (
	"context"
	"fmt"
	"strings"

	"ap-merch-web/internal/domain"

	"google.golang.org/genai"
)

const (
	opGeminiText  = "gemini text"
	opGeminiImage = "gemini image"

	defaultImageMIMEType = "image/png"
)

// GeminiConfig は Gemini / Imagen の接続設定です。
type GeminiConfig struct {
	APIKey     string
	Model      string
	ImageModel string
}

// GeminiAdapter は genai SDK を使ってテキストと画像を生成します。
// 画像は URL を持たないため、ImageStore に保存した上で署名付き URL を返します。
type GeminiAdapter struct {
	client *genai.Client
	cfg    GeminiConfig
	store  ImageStore
}

func NewGeminiAdapter(ctx context.Context, cfg GeminiConfig, store ImageStore) (*GeminiAdapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return &GeminiAdapter{client: client, cfg: cfg, store: store}, nil
}

// GenerateText は system ロールをシステム指示に、それ以外を会話内容に振り分けて呼び出します。
func (a *GeminiAdapter) GenerateText(ctx context.Context, messages []domain.Message) (string, error) {
	system, contents := splitMessages(messages)

	var genCfg *genai.GenerateContentConfig
	if system != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.cfg.Model, contents, genCfg)
	if err != nil {
		return "", domain.TransportError(opGeminiText, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.EmptyError(opGeminiText, "no completion returned")
	}
	return text, nil
}

// GenerateImage は 1 枚だけ画像を生成して保存します。size と quality は Imagen では使いません。
func (a *GeminiAdapter) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	if a.store == nil {
		return "", domain.ConfigError(opGeminiImage, "image storage is not configured")
	}

	resp, err := a.client.Models.GenerateImages(ctx, a.cfg.ImageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: defaultImageMIMEType,
	})
	if err != nil {
		return "", domain.TransportError(opGeminiImage, err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", domain.EmptyError(opGeminiImage, "no image returned")
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = defaultImageMIMEType
	}

	url, err := a.store.Store(ctx, img.ImageBytes, mimeType)
	if err != nil {
		return "", domain.TransportError(opGeminiImage, err)
	}
	return url, nil
}

func splitMessages(messages []domain.Message) (string, []*genai.Content) {
	var system []string
	var contents []*genai.Content
	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	return strings.Join(system, "\n\n"), contents
}
