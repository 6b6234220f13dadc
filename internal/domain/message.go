package domain

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message はテキスト生成 API に渡す 1 件のメッセージです。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ImageRequest は画像生成 API への要求内容です。枚数は常に 1 枚です。
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
}
