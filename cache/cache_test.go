package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/cache"
)

func TestStoreFetch(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls int
	fetch := func() ([]string, error) {
		calls++
		return []string{"pop", "dance pop"}, nil
	}

	item, err := c.ArtistGenres.Fetch("artist-1", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"pop", "dance pop"}, item.Value())

	item, err = c.ArtistGenres.Fetch("artist-1", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"pop", "dance pop"}, item.Value())
	assert.Equal(t, 1, calls)
}

func TestStoreFetchErrorNotCached(t *testing.T) {
	t.Parallel()

	s := cache.NewStore[int](10)
	errBoom := errors.New("boom")

	_, err := s.Fetch("k", time.Minute, func() (int, error) { return 0, errBoom })
	require.ErrorIs(t, err, errBoom)

	item, err := s.Fetch("k", time.Minute, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, item.Value())
}
