package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			want := domain.Session{Idea: "Funny Cat Mug idea", ProductType: domain.ProductMug, Seed: "cozy cat lovers mug"}
			require.NoError(t, store.Save(ctx, "abc", want))

			got, err := store.Load(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, store.Delete(ctx, "abc"))
			_, err = store.Load(ctx, "abc")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, store.Save(context.Background(), "abc", domain.Session{Idea: "x"}))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"abc"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(NewMemoryStore(time.Hour), ManagerConfig{
		CookieName: "merch-test",
		AuthKey:    []byte("0123456789abcdef0123456789abcdef"),
		TTL:        time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestManager_UpdatePersistsAcrossRequests(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/actions/seed", nil)
	s, err := m.Update(rec, req, func(s *domain.Session) { s.Seed = "retro dog owners poster" })
	require.NoError(t, err)
	assert.Equal(t, "retro dog owners poster", s.Seed)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	got, err := m.View(next)
	require.NoError(t, err)
	assert.Equal(t, "retro dog owners poster", got.Seed)

	// 2 回目以降は Cookie を再発行しません。
	rec2 := httptest.NewRecorder()
	again := httptest.NewRequest(http.MethodPost, "/actions/idea", nil)
	again.AddCookie(cookies[0])
	_, err = m.Update(rec2, again, func(s *domain.Session) { s.Idea = "idea" })
	require.NoError(t, err)
	assert.Empty(t, rec2.Result().Cookies())
}

func TestManager_ViewWithoutCookie(t *testing.T) {
	m := newManager(t)
	s, err := m.View(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.Session{}, s)
}

func TestManager_TamperedCookieStartsFresh(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "merch-test", Value: "forged"})
	s, err := m.View(req)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{}, s)
}

func TestManager_Clear(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	_, err := m.Update(rec, httptest.NewRequest(http.MethodPost, "/", nil), func(s *domain.Session) { s.Idea = "x" })
	require.NoError(t, err)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/actions/reset", nil)
	req.AddCookie(cookie)
	require.NoError(t, m.Clear(req))

	view := httptest.NewRequest(http.MethodGet, "/", nil)
	view.AddCookie(cookie)
	s, err := m.View(view)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{}, s)
}

func TestManager_SerializesUpdates(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	_, err := m.Update(rec, httptest.NewRequest(http.MethodPost, "/", nil), func(s *domain.Session) {})
	require.NoError(t, err)
	cookie := rec.Result().Cookies()[0]

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.AddCookie(cookie)
			_, err := m.Update(httptest.NewRecorder(), req, func(s *domain.Session) { s.Seed += "x" })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	s, err := m.View(req)
	require.NoError(t, err)
	assert.Len(t, s.Seed, n)
}

func TestManager_OtherSessionsDoNotWait(t *testing.T) {
	m := newManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Update(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/actions/image", nil), func(s *domain.Session) {
			close(started)
			<-release
		})
		assert.NoError(t, err)
	}()
	<-started

	// 別の Cookie (新規セッション) は、実行中の更新を待たずに終わります。
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, err := m.Update(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/actions/seed", nil), func(s *domain.Session) { s.Seed = "s" })
		assert.NoError(t, err)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("別セッションの更新が待たされました")
	}

	close(release)
	<-done
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}

func TestNewManager_GeneratesKey(t *testing.T) {
	m, err := NewManager(NewMemoryStore(time.Minute), ManagerConfig{CookieName: "x", TTL: time.Minute})
	require.NoError(t, err)
	assert.NotNil(t, m)
}
