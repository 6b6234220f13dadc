package merch

import (
	"fmt"

	"ap-merch-web/internal/domain"
)

const (
	// DefaultImageSize は画像生成時の固定解像度です。
	DefaultImageSize = "1024x1024"
	// DefaultImageQuality は画像生成時の品質ティアです。
	DefaultImageQuality = "hd"

	ideaSystemPrompt = "You are a best-selling Etsy strategist and AI product designer. Your job is to create profitable, evergreen print-on-demand merch ideas (shirts, mugs, posters, etc.) using AI-generated branding."

	ideaUserPrompt = "Give me a product idea that matches these rules:\n" +
		"- It must be funny, clever, or emotionally resonant\n" +
		"- It should target a niche that buys (e.g. pet lovers, teachers, gamers, parents, horror fans)\n" +
		"- It must be easy to illustrate with an image model\n" +
		"- Include a suggested product type (t-shirt, mug, etc.), a short Etsy-style title, and a product description"

	ideaContextSuffix = "\n- Build the idea around this niche or theme: %q"

	imageStyleDirective = "Bold, vibrant, clean design with centered composition, transparent or plain white background, merch-ready, vector-style, %s resolution, suitable for Etsy listing."
)

// IdeaMessages はアイデア生成用のシステム・ユーザーメッセージの組を返します。
// contextPhrase が空の場合はニッチ指定なしのプロンプトになります。
func IdeaMessages(contextPhrase string) []domain.Message {
	user := ideaUserPrompt
	if contextPhrase != "" {
		user += fmt.Sprintf(ideaContextSuffix, contextPhrase)
	}
	return []domain.Message{
		{Role: domain.RoleSystem, Content: ideaSystemPrompt},
		{Role: domain.RoleUser, Content: user},
	}
}

// ImagePrompt は商品タイプとアイデア全文から画像生成プロンプトを組み立てます。
func ImagePrompt(productType domain.ProductType, idea string) string {
	return fmt.Sprintf("A %s design featuring: %s. "+imageStyleDirective, productType, idea, DefaultImageSize)
}
