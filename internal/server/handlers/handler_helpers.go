package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ap-merch-web/internal/domain"
)

// maxFormBytes はフォーム本文の上限です。
const maxFormBytes = 64 << 10

// formInput は各アクションの POST で送られてくるフォームの内容です。
type formInput struct {
	// Creds はフォームに入力された値そのもので、画面への再表示に使います。
	Creds        domain.Credentials
	Candidates   string
	CatalogNiche string
}

// parseForm はフォームを読み取ります。読み取りに失敗した場合は空の入力として扱います。
func parseForm(w http.ResponseWriter, r *http.Request) formInput {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		slog.WarnContext(r.Context(), "フォームの解析に失敗しました", "error", err)
		return formInput{}
	}
	field := func(name string) string { return strings.TrimSpace(r.PostFormValue(name)) }
	return formInput{
		Creds: domain.Credentials{
			AIKey:          field("ai_key"),
			WebhookURL:     field("webhook_url"),
			EtsyAPIKey:     field("etsy_api_key"),
			TrendsAPIKey:   field("trends_api_key"),
			PrintifyToken:  field("printify_token"),
			PrintifyShopID: field("printify_shop_id"),
		},
		Candidates:   r.PostFormValue("candidates"),
		CatalogNiche: field("catalog_niche"),
	}
}

// effective は未入力の項目をサーバー側の既定値で補完した認証情報を返します。
func (h *Handler) effective(in formInput) domain.Credentials {
	return in.Creds.WithDefaults(h.cfg.DefaultCredentials())
}

// noticeFromError はエラー種別に応じて警告またはエラーの表示に変換します。
func noticeFromError(label string, err error) domain.Notice {
	var se *domain.StepError
	if !errors.As(err, &se) {
		return domain.Notice{Level: domain.NoticeError, Message: "❌ " + label + ": " + err.Error()}
	}

	switch se.Kind {
	case domain.KindConfig, domain.KindEmpty:
		msg := se.Message
		if msg == "" {
			msg = se.Error()
		}
		return domain.Notice{Level: domain.NoticeWarning, Message: "⚠️ " + msg}
	default:
		return domain.Notice{Level: domain.NoticeError, Message: "❌ " + label + ": " + se.Error()}
	}
}

func success(msg string) domain.Notice {
	return domain.Notice{Level: domain.NoticeSuccess, Message: msg}
}

func info(msg string) domain.Notice {
	return domain.Notice{Level: domain.NoticeInfo, Message: msg}
}

// render は HTML テンプレートをレンダリングし、レスポンスを書き込みます。
func (h *Handler) render(w http.ResponseWriter, status int, pageName string, title string, data any) {
	tmpl, ok := h.templateCache[pageName]
	if !ok {
		slog.Error("キャッシュ内にテンプレートが見つかりません", "page", pageName)
		http.Error(w, "システムエラーが発生しました（テンプレート未定義）", http.StatusInternalServerError)
		return
	}

	renderData := struct {
		Title string
		Data  any
	}{
		Title: title + titleSuffix,
		Data:  data,
	}

	var buf bytes.Buffer
	// レイアウトファイルをベースに実行します
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", renderData); err != nil {
		slog.Error("テンプレートのレンダリングに失敗しました", "page", pageName, "error", err)
		http.Error(w, "画面の表示中にエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}
