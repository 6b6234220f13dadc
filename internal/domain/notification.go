package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 公開したドロップのメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// TargetTitle は Webhook に送った商品タイトルです。
	TargetTitle string `json:"target_title"`

	// Category は商品カテゴリです。(例: "Mug", "T-shirt")
	Category string `json:"category"`

	// Price は送信した価格文字列です。
	Price string `json:"price"`

	// ImageURL は生成された画像の URL です。
	ImageURL string `json:"image_url"`

	// ListingURL は見つかった場合のマーケットプレイス出品 URL です。
	ListingURL string `json:"listing_url"`

	// ExecutionMode は実行されたステップとプロバイダです。(例: "publish / openai")
	ExecutionMode string `json:"execution_mode"`
}
