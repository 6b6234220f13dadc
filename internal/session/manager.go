package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const sessionIDKey = "sid"

// ManagerConfig は Cookie の署名・暗号化設定です。
type ManagerConfig struct {
	CookieName string
	// AuthKey が空の場合は起動ごとにランダム鍵を生成します (再起動でセッションは失効します)。
	AuthKey    []byte
	EncryptKey []byte
	Secure     bool
	TTL        time.Duration
}

// Manager は Cookie のセッション ID とストア上の状態を結び付けます。
// 同一 ID への更新は直列化され、状態は常に単一ライターで書き換えられます。
// ロックはセッション ID ごとに持つため、別セッションの外部 API 呼び出しを待つことはありません。
type Manager struct {
	cookies *sessions.CookieStore
	name    string
	store   Store

	mu    sync.Mutex
	locks map[string]*idLock
}

// idLock は使用中の間だけ locks に残ります。
type idLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, cfg ManagerConfig) (*Manager, error) {
	authKey := cfg.AuthKey
	if len(authKey) == 0 {
		authKey = securecookie.GenerateRandomKey(32)
		if authKey == nil {
			return nil, errors.New("failed to generate session auth key")
		}
		slog.Warn("SESSION_SECRET が未設定のため、ランダムな署名鍵を使用します。再起動でセッションは失効します。")
	}

	keyPairs := [][]byte{authKey}
	if len(cfg.EncryptKey) > 0 {
		keyPairs = append(keyPairs, cfg.EncryptKey)
	}

	cs := sessions.NewCookieStore(keyPairs...)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{cookies: cs, name: cfg.CookieName, store: store, locks: make(map[string]*idLock)}, nil
}

// View は現在の状態を読み取ります。Cookie がなければ空の状態を返し、Cookie は発行しません。
func (m *Manager) View(r *http.Request) (domain.Session, error) {
	id := m.existingID(r)
	if id == "" {
		return domain.Session{}, nil
	}
	s, err := m.store.Load(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return domain.Session{}, nil
	}
	return s, err
}

// Update は状態を読み込んで fn に渡し、fn の終了後に保存します。
// 状態を変更するかどうかは fn (各ステップ) が決めます。
func (m *Manager) Update(w http.ResponseWriter, r *http.Request, fn func(*domain.Session)) (domain.Session, error) {
	id, err := m.ensureID(w, r)
	if err != nil {
		return domain.Session{}, err
	}

	unlock := m.lock(id)
	defer unlock()

	ctx := r.Context()
	s, err := m.store.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return domain.Session{}, err
	}

	fn(&s)

	if err := m.store.Save(ctx, id, s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// Clear は状態を破棄します。Cookie の ID はそのまま使い続けます。
func (m *Manager) Clear(r *http.Request) error {
	id := m.existingID(r)
	if id == "" {
		return nil
	}

	unlock := m.lock(id)
	defer unlock()

	return m.store.Delete(r.Context(), id)
}

func (m *Manager) existingID(r *http.Request) string {
	// 改ざん・鍵変更で復号できない Cookie は新規セッション扱いです。
	cs, err := m.cookies.Get(r, m.name)
	if err != nil {
		return ""
	}
	id, _ := cs.Values[sessionIDKey].(string)
	return id
}

func (m *Manager) ensureID(w http.ResponseWriter, r *http.Request) (string, error) {
	cs, _ := m.cookies.Get(r, m.name)
	if id, ok := cs.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	cs.Values[sessionIDKey] = id
	if err := cs.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session cookie: %w", err)
	}
	return id, nil
}

// lock は id のロックを取得し、解放関数を返します。
// 待機者がいなくなったロックは解放時に map から削除します。
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
