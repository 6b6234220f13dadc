package builder

import (
	"fmt"
	"net/url"

	"ap-merch-web/internal/app"
	"ap-merch-web/internal/server/handlers"

	"github.com/shouni/gcp-kit/auth"
)

const defaultSessionName = "ap-merch-session"

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	// Auth は Google ログインが無効な場合 nil です。
	Auth *auth.Handler
	Web  *handlers.Handler
}

// BuildHandlers は各ハンドラーの依存関係をすべて組み立て、AppHandlers 構造体を返します。
func BuildHandlers(c *app.Container) (*AppHandlers, error) {
	var authHandler *auth.Handler
	if c.Config.AuthEnabled() {
		if c.Config.ServiceURL == "" {
			return nil, fmt.Errorf("認証リダイレクトのために ServiceURL の設定が必要です")
		}
		h, err := createAuthHandler(c)
		if err != nil {
			return nil, fmt.Errorf("認証Handlerの初期化に失敗しました: %w", err)
		}
		authHandler = h
	}

	webHandler, err := handlers.NewHandler(c.Config, c.Pipeline, c.Sessions)
	if err != nil {
		return nil, fmt.Errorf("WebHandlerの初期化に失敗しました: %w", err)
	}

	return &AppHandlers{
		Auth: authHandler,
		Web:  webHandler,
	}, nil
}

// createAuthHandler は Container から認証ライブラリ用の設定を構築し、ハンドラーを生成します。
func createAuthHandler(c *app.Container) (*auth.Handler, error) {
	cfg := c.Config
	redirectURL, err := url.JoinPath(cfg.ServiceURL, "/auth/callback")
	if err != nil {
		return nil, fmt.Errorf("リダイレクトURLの構築に失敗しました: %w", err)
	}

	return auth.NewHandler(auth.Config{
		ClientID:          cfg.GoogleClientID,
		ClientSecret:      cfg.GoogleClientSecret,
		RedirectURL:       redirectURL,
		SessionAuthKey:    cfg.SessionSecret,
		SessionEncryptKey: cfg.SessionEncryptKey,
		SessionName:       defaultSessionName,
		IsSecureCookie:    c.HTTPClient.IsSecureServiceURL(cfg.ServiceURL),
		AllowedEmails:     cfg.AllowedEmails,
		AllowedDomains:    cfg.AllowedDomains,
		TaskAudienceURL:   cfg.ServiceURL,
	})
}
