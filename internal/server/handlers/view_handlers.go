package handlers

import (
	"log/slog"
	"net/http"

	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/merch"
	"ap-merch-web/internal/niche"
)

const indexPage = "index.html"

// pageData は index.html に渡す表示用データです。
type pageData struct {
	Session     domain.Session
	Form        formInput
	Notices     []domain.Notice
	Catalog     []string
	Scores      []niche.Score
	ListingURL  string
	NicheSource string
	IdeaContext string
	Provider    string

	// Price と Category はアイデアがある場合のみ設定され、公開前の確認に使います。
	Price    string
	Category string

	CanGenerateImage bool
	CanPublish       bool
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.View(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "セッションの読み込みに失敗しました", "error", err)
		http.Error(w, "セッションの読み込みに失敗しました", http.StatusInternalServerError)
		return
	}
	h.renderIndex(w, s, formInput{}, nil, nil)
}

// renderIndex は現在のセッション状態とアクション結果で画面を描画します。
func (h *Handler) renderIndex(w http.ResponseWriter, s domain.Session, in formInput, notices []domain.Notice, extra func(*pageData)) {
	data := pageData{
		Session:          s,
		Form:             in,
		Notices:          notices,
		Catalog:          h.pipeline.Catalog().Niches,
		NicheSource:      h.cfg.NicheSource,
		IdeaContext:      h.cfg.IdeaContext,
		Provider:         h.cfg.AIProvider,
		CanGenerateImage: s.CanGenerateImage(),
		CanPublish:       s.CanPublish(),
	}
	if s.Idea != "" {
		data.Price = merch.PriceOf(string(s.ProductType))
		data.Category = domain.CategoryFromType(s.ProductType)
	}
	if extra != nil {
		extra(&data)
	}
	h.render(w, http.StatusOK, indexPage, "Drop Builder", data)
}
