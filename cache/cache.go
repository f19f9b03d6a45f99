package cache

import (
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/xeptore/promptgen/track"
)

var (
	DefaultArtistGenresTTL = 1 * time.Hour
	DefaultTrackTTL        = 1 * time.Hour
)

type Cache struct {
	ArtistGenres *Store[[]string]
	Tracks       *Store[*track.Record]
}

func New() *Cache {
	return &Cache{
		ArtistGenres: NewStore[[]string](1000),
		Tracks:       NewStore[*track.Record](5000),
	}
}

func (c *Cache) Close() {
	c.ArtistGenres.c.Stop()
	c.Tracks.c.Stop()
}

// Store serializes Fetch calls so concurrent misses on the same key invoke
// fetch once.
type Store[T any] struct {
	c   *ccache.Cache[T]
	mux sync.Mutex
}

func NewStore[T any](maxSize int64) *Store[T] {
	return &Store[T]{
		c: ccache.New(
			ccache.Configure[T]().
				MaxSize(maxSize).
				GetsPerPromote(3).
				ItemsToPrune(1),
		),
		mux: sync.Mutex{},
	}
}

// Fetch returns the cached value for k, calling fetch on a miss or expiry.
// Errors returned by fetch are not cached.
func (s *Store[T]) Fetch(k string, ttl time.Duration, fetch func() (T, error)) (*ccache.Item[T], error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.c.Fetch(k, ttl, fetch)
}
