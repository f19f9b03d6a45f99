package spotify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/spotify"
)

func TestIsLink(t *testing.T) {
	t.Parallel()

	t.Run("valid links", func(t *testing.T) {
		t.Parallel()

		tests := []string{
			"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M/",
			"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=1a2b3c4d5e6f",
			"https://open.spotify.com/intl-de/playlist/37i9dQZF1DXcBWIGoYBM5M",
			"  https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M\n",
		}

		for _, test := range tests {
			if !spotify.IsLink(test) {
				t.Errorf("expected %q to be a valid Spotify playlist link", test)
			}
		}
	})

	t.Run("invalid links", func(t *testing.T) {
		t.Parallel()

		tests := []string{
			"",
			"spotify:playlist:37i9dQZF1DXcBWIGoYBM5M",
			"https://open.spotify.com/album/37i9dQZF1DXcBWIGoYBM5M",
			"https://example.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			"https://open.spotify.com/playlist/short",
			"ftp://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
		}

		for _, test := range tests {
			if spotify.IsLink(test) {
				t.Errorf("expected %q to be rejected", test)
			}
		}
	})
}

func TestParsePlaylistID(t *testing.T) {
	t.Parallel()

	const id = "37i9dQZF1DXcBWIGoYBM5M"
	for _, in := range []string{
		"https://open.spotify.com/playlist/" + id + "?si=abc",
		"spotify:playlist:" + id,
		id,
	} {
		got, err := spotify.ParsePlaylistID(in)
		require.NoError(t, err, in)
		assert.Equal(t, id, got)
	}

	_, err := spotify.ParsePlaylistID("https://open.spotify.com/track/" + id)
	require.ErrorIs(t, err, spotify.ErrInvalidLink)
}
