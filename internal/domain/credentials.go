package domain

// Credentials はフォームから受け取る外部サービスの認証情報です。
// リクエストごとに組み立てられ、サーバー側には保存しません。
type Credentials struct {
	AIKey          string
	WebhookURL     string
	EtsyAPIKey     string
	TrendsAPIKey   string
	PrintifyToken  string
	PrintifyShopID string
}

// WithDefaults は空のフィールドを defaults の値で補完したコピーを返します。
func (c Credentials) WithDefaults(defaults Credentials) Credentials {
	pick := func(v, d string) string {
		if v != "" {
			return v
		}
		return d
	}
	return Credentials{
		AIKey:          pick(c.AIKey, defaults.AIKey),
		WebhookURL:     pick(c.WebhookURL, defaults.WebhookURL),
		EtsyAPIKey:     pick(c.EtsyAPIKey, defaults.EtsyAPIKey),
		TrendsAPIKey:   pick(c.TrendsAPIKey, defaults.TrendsAPIKey),
		PrintifyToken:  pick(c.PrintifyToken, defaults.PrintifyToken),
		PrintifyShopID: pick(c.PrintifyShopID, defaults.PrintifyShopID),
	}
}

// HasPrintify は出品 URL の探索に必要な情報が揃っているかを返します。
func (c Credentials) HasPrintify() bool {
	return c.PrintifyToken != "" && c.PrintifyShopID != ""
}
