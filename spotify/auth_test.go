package spotify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/spotify"
)

func TestNewHTTPClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := spotify.NewHTTPClient(t.Context(), "", "secret")
	require.Error(t, err)

	_, err = spotify.NewHTTPClient(t.Context(), "id", "")
	require.Error(t, err)
}
