package domain

// ProductType はアイデア本文から判定された商品カテゴリです。
type ProductType string

const (
	ProductMug     ProductType = "mug"
	ProductTShirt  ProductType = "t-shirt"
	ProductPoster  ProductType = "poster"
	ProductGeneric ProductType = "product"
)

// Session は 1 回の対話セッション中だけ保持される作業状態です。
// 各ステップはこの構造体をポインタで受け取り、成功した場合のみ更新します。
type Session struct {
	Idea        string      `json:"idea"`
	ImageURL    string      `json:"image_url"`
	ProductType ProductType `json:"product_type"`
	HotNiche    string      `json:"hot_niche"`
	Seed        string      `json:"seed"`
}

// CanGenerateImage は画像生成ステップが有効かどうかを返します。
func (s *Session) CanGenerateImage() bool {
	return s.Idea != ""
}

// CanPublish はドロップ公開ステップが有効かどうかを返します。
func (s *Session) CanPublish() bool {
	return s.Idea != "" && s.ImageURL != ""
}

// Reset はセッションを初期状態に戻します。
func (s *Session) Reset() {
	*s = Session{}
}
