package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"booktrader/config"
	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is a minimal map-backed EntityCache for adapter tests.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any)}
}

func (c *fakeCache) Key(entityType, id string) string { return entityType + ":" + id }

func (c *fakeCache) Resolve(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]

	return v, ok
}

func (c *fakeCache) Store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func newTestClient(t *testing.T, upstream http.Handler) (*client, *fakeCache, *int32) {
	t.Helper()

	var calls int32
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		upstream.ServeHTTP(w, r)
	})

	server := httptest.NewServer(counting)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Catalog.BaseURL = server.URL
	cfg.Catalog.SearchLimit = 40
	cfg.Catalog.Timeout = 5 * time.Second

	cache := newFakeCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(cfg, cache, logger).(*client), cache, &calls
}

func TestSearch_PreservesProviderOrderAndNormalizes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		w.Write([]byte(`{"items":[
            {"id":"g2","volumeInfo":{"title":"Second"}},
            {"id":"g1","volumeInfo":{"title":"First","pageCount":100}}
        ]}`))
	})

	c, _, _ := newTestClient(t, handler)

	results, err := c.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "g2", results[0].ExternalID)
	assert.Nil(t, results[0].PageCount)
	assert.Equal(t, "g1", results[1].ExternalID)
	require.NotNil(t, results[1].PageCount)
	assert.Equal(t, 100, *results[1].PageCount)
}

func TestSearch_QueryIsURLEncoded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "war & peace", r.URL.Query().Get("q"))
		w.Write([]byte(`{"items":[]}`))
	})

	c, _, _ := newTestClient(t, handler)

	results, err := c.Search(context.Background(), "war & peace")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NonSuccessStatusRejects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, _, _ := newTestClient(t, handler)

	_, err := c.Search(context.Background(), "dune")
	assert.ErrorIs(t, err, domainerrors.ErrNetworkFailure)
}

func TestView_SecondCallServedFromCache(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"g1","volumeInfo":{"title":"Dune"}}`))
	})

	c, cache, calls := newTestClient(t, handler)
	ctx := context.Background()

	first, err := c.View(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", first.Title)

	second, err := c.View(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Equal(t, int32(1), *calls, "second view must not hit the network")

	_, ok := cache.Resolve(cache.Key(entity.TypeCatalogEntity, "g1"))
	assert.True(t, ok)
}

func TestView_ConcurrentCallsCollapseToOneFetch(t *testing.T) {
	var mu sync.Mutex
	upstreamCalls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		upstreamCalls++
		mu.Unlock()
		// Slow response keeps the fetch in flight while all views are issued.
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"id":"g1","volumeInfo":{"title":"Dune"}}`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Catalog.BaseURL = server.URL
	cfg.Catalog.SearchLimit = 40
	cfg.Catalog.Timeout = 5 * time.Second

	c := NewClient(cfg, newFakeCache(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*client)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.View(context.Background(), "g1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, upstreamCalls, "concurrent views of one id must share one fetch")
}

func TestView_NotFoundRejects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c, _, _ := newTestClient(t, handler)

	_, err := c.View(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrCatalogNotFound)
}

func TestView_NetworkFailureRejectsWithoutCacheWrite(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, cache, _ := newTestClient(t, handler)

	_, err := c.View(context.Background(), "g1")
	require.True(t, errors.Is(err, domainerrors.ErrNetworkFailure))

	_, ok := cache.Resolve(cache.Key(entity.TypeCatalogEntity, "g1"))
	assert.False(t, ok, "failed fetch must not populate the cache")
}
