package cache

import (
	"context"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

type Manager[T any] struct {
	cache *cache.Cache[T]
}

var (
	downloadCacheManager *Manager[[]byte]
)

func init() {
	client := gocache.New(5*time.Minute, 5*time.Minute)
	downloadCacheManager = &Manager[[]byte]{
		cache: cache.New[[]byte](go_cache.NewGoCache(client)),
	}
}

// DownloadCacheManager caches input images fetched by URL so repeated calls
// that reference the same source image do not refetch it.
func DownloadCacheManager() *Manager[[]byte] {
	return downloadCacheManager
}

func (m *Manager[T]) SetWithExpiration(key string, value T, expir time.Duration) error {
	timeout, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return m.cache.Set(timeout, key, value, store.WithExpiration(expir))
}

func (m *Manager[T]) GetValue(key string) (value T, err error) {
	timeout, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	const errorMessage = "value not found"
	value, err = m.cache.Get(timeout, key)
	if err != nil && strings.Contains(err.Error(), errorMessage) {
		err = nil
		return
	}
	return
}
