package session

import (
	"context"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/patrickmn/go-cache"
)

// MemoryStore はプロセス内メモリに状態を保持します。単一インスタンス運用向けです。
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (domain.Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	return v.(domain.Session), nil
}

// Save は値コピーで保存するため、呼び出し側が後で書き換えても影響しません。
func (m *MemoryStore) Save(_ context.Context, id string, s domain.Session) error {
	m.cache.Set(id, s, cache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
