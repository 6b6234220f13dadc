package domain

// LookupStatus は出品 URL 探索の結果種別です。
type LookupStatus string

const (
	LookupSkipped  LookupStatus = "skipped"
	LookupFound    LookupStatus = "found"
	LookupNotFound LookupStatus = "not-found"
	LookupFailed   LookupStatus = "failed"
)

// ListingLookup は公開ステップとは独立した出品 URL 探索の結果です。
// 失敗しても公開結果は巻き戻しません。
type ListingLookup struct {
	Status LookupStatus
	URL    string
	Err    error
}

// ExternalLink はプリントオンデマンド商品に紐づく外部ストアのリンクです。
type ExternalLink struct {
	IntegrationType string `json:"integration_type"`
	ExternalID      string `json:"external_id"`
}

// PODProduct はプリントオンデマンド API の商品 1 件です。
type PODProduct struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	External []ExternalLink `json:"external"`
}
