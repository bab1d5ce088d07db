package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// PageTTL is the staleness window of the global listing: reads within it
// may serve a render that predates the latest write.
const PageTTL = 20 * time.Second

var (
	backend *ristretto.Cache
	pages   *gocache.Cache[[]byte]
)

func Init() error {
	r, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}
	backend = r
	pages = gocache.New[[]byte](ristretto_store.NewRistretto(r))
	return nil
}

func GetPage(key string) ([]byte, bool) {
	data, err := pages.Get(context.Background(), key)
	if err != nil {
		return nil, false
	}
	return data, true
}

func SetPage(key string, data []byte) {
	_ = pages.Set(context.Background(), key, data,
		store.WithExpiration(PageTTL), store.WithCost(int64(len(data))))
	// Ristretto admits writes asynchronously; wait so the very next
	// request can already be served from cache.
	backend.Wait()
}

// Clear drops every cached render immediately (admin and test use).
func Clear() {
	if pages == nil {
		return
	}
	_ = pages.Clear(context.Background())
}
