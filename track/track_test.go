package track_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/track"
)

func TestCollectionFlatten(t *testing.T) {
	t.Parallel()

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		var c track.Collection
		require.Empty(t, c.Flatten())
		require.Zero(t, c.Len())
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{
			{{ID: "a"}, {ID: "b"}},
			{},
			{{ID: "c"}},
		}
		flat := c.Flatten()
		require.Len(t, flat, 3)
		require.Equal(t, 3, c.Len())
		require.Equal(t, "a", flat[0].ID)
		require.Equal(t, "b", flat[1].ID)
		require.Equal(t, "c", flat[2].ID)
	})
}

func TestKeyOf(t *testing.T) {
	t.Parallel()
	k := track.KeyOf(7)
	require.NotNil(t, k)
	require.Equal(t, 7, *k)
}
