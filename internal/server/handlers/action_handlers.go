package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/pipeline"
)

// actionFunc はセッションを書き換える 1 回分のアクションです。
// 画面に表示する通知と、追加の表示データを返します。
type actionFunc func(ctx context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData))

// runAction はセッションを直列化して読み込み、アクションを実行した結果で画面を再描画します。
func (h *Handler) runAction(w http.ResponseWriter, r *http.Request, action actionFunc) {
	in := parseForm(w, r)

	var notices []domain.Notice
	var extra func(*pageData)
	s, err := h.sessions.Update(w, r, func(s *domain.Session) {
		notices, extra = action(r.Context(), s, in)
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "セッションの保存に失敗しました", "error", err)
		http.Error(w, "セッションの保存に失敗しました", http.StatusInternalServerError)
		return
	}
	h.renderIndex(w, s, in, notices, extra)
}

func (h *Handler) HandleNiche(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(ctx context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData)) {
		res, err := h.pipeline.SelectNiche(ctx, s, h.effective(in), in.Candidates)
		if err != nil {
			return []domain.Notice{noticeFromError("ニッチの選択に失敗しました", err)}, nil
		}
		return []domain.Notice{success("🔥 ホットなニッチ: " + res.Selected)},
			func(d *pageData) { d.Scores = res.Scores }
	})
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(_ context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData)) {
		if err := h.pipeline.PickCatalogNiche(s, in.CatalogNiche); err != nil {
			return []domain.Notice{noticeFromError("ニッチの選択に失敗しました", err)}, nil
		}
		return []domain.Notice{success("📚 ニッチを設定しました: " + s.HotNiche)}, nil
	})
}

func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(_ context.Context, s *domain.Session, _ formInput) ([]domain.Notice, func(*pageData)) {
		seed := h.pipeline.RollSeed(s)
		return []domain.Notice{success("🎲 シード: " + seed)}, nil
	})
}

func (h *Handler) HandleIdea(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(ctx context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData)) {
		if err := h.pipeline.GenerateIdea(ctx, s, h.effective(in)); err != nil {
			return []domain.Notice{noticeFromError("アイデアの生成に失敗しました", err)}, nil
		}
		return []domain.Notice{success("✅ 商品アイデアを生成しました！")}, nil
	})
}

func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(ctx context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData)) {
		if err := h.pipeline.GenerateImage(ctx, s, h.effective(in)); err != nil {
			return []domain.Notice{noticeFromError("画像の生成に失敗しました", err)}, nil
		}
		return []domain.Notice{success("✅ 画像を生成しました！")}, nil
	})
}

func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, func(ctx context.Context, s *domain.Session, in formInput) ([]domain.Notice, func(*pageData)) {
		res, err := h.pipeline.Publish(ctx, s, h.effective(in))
		if err != nil {
			return []domain.Notice{noticeFromError("Webhook への送信に失敗しました", err)}, nil
		}
		return publishNotices(res), func(d *pageData) { d.ListingURL = res.Listing.URL }
	})
}

// publishNotices は公開結果と出品探索結果を別々の通知にします。見つからなかった場合は何も表示しません。
func publishNotices(res pipeline.PublishResult) []domain.Notice {
	notices := []domain.Notice{success("📤 Webhook に送信しました！")}
	switch res.Listing.Status {
	case domain.LookupFound:
		notices = append(notices, success("🛒 出品ページ: "+res.Listing.URL))
	case domain.LookupFailed:
		notices = append(notices, noticeFromError("出品ページの検索に失敗しました", res.Listing.Err))
	}
	return notices
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	in := parseForm(w, r)
	if err := h.sessions.Clear(r); err != nil {
		slog.ErrorContext(r.Context(), "セッションの削除に失敗しました", "error", err)
		http.Error(w, "セッションの削除に失敗しました", http.StatusInternalServerError)
		return
	}
	h.renderIndex(w, domain.Session{}, in, []domain.Notice{info("♻️ セッションをリセットしました")}, nil)
}
