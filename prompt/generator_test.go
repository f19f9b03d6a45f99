package prompt_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/prompt"
	"github.com/xeptore/promptgen/track"
)

func newGenerator(seed uint64) *prompt.Generator {
	return prompt.NewGenerator(prompt.DefaultVocabulary(), prompt.NewSeededSampler(seed), zerolog.Nop())
}

func rec(energy, valence, danceability, tempo float64, key *int, genres ...string) track.Record {
	return track.Record{
		Features: track.Features{
			Energy:       energy,
			Valence:      valence,
			Danceability: danceability,
			Tempo:        tempo,
			Key:          key,
		},
		Genres: genres,
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("SingleTrack", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{{rec(0.85, 0.2, 0.75, 140, track.KeyOf(0), "pop")}}
		out, err := newGenerator(1).Generate(c, 1)
		require.NoError(t, err)
		assert.Equal(t, "A pop track, high energy, sad mood, high danceability, and fast tempo in a C key.", out)
	})

	t.Run("SingleDistinctGenreDropsInfluence", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{
			{rec(0.85, 0.2, 0.75, 140, track.KeyOf(0), "pop")},
			{rec(0.85, 0.2, 0.75, 140, track.KeyOf(0), "pop", "pop")},
		}
		out, err := newGenerator(7).Generate(c, 3)
		require.NoError(t, err)
		assert.Equal(t, "A pop track, high energy, sad mood, high danceability, and fast tempo in a C key.", out)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{{rec(0.1, 0.9, 0.5, 60, nil, "ambient")}}
		out, err := newGenerator(3).Generate(c, 2)
		require.NoError(t, err)
		assert.Equal(t, "A ambient track, low energy, happy mood, medium danceability, and slow tempo in a unknown key.", out)
	})

	t.Run("EmptyTrackPool", func(t *testing.T) {
		t.Parallel()
		_, err := newGenerator(1).Generate(track.Collection{{}, {}}, 1)
		require.ErrorIs(t, err, prompt.ErrEmptyTrackPool)

		_, err = newGenerator(1).Generate(nil, 1)
		require.ErrorIs(t, err, prompt.ErrEmptyTrackPool)
	})

	t.Run("EmptyGenrePool", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{{rec(0.5, 0.5, 0.5, 100, track.KeyOf(2)), rec(0.4, 0.4, 0.4, 90, nil)}}
		_, err := newGenerator(1).Generate(c, 1)
		require.ErrorIs(t, err, prompt.ErrEmptyGenrePool)
	})

	t.Run("InvalidGenreCount", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{{rec(0.5, 0.5, 0.5, 100, nil, "rock")}}
		_, err := newGenerator(1).Generate(c, 0)
		require.ErrorIs(t, err, prompt.ErrInvalidGenreCount)
	})

	t.Run("NonEmptyPoolProducesPrompt", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{
			{rec(0.2, 0.8, 0.4, 95, track.KeyOf(9), "indie rock", "indie"), rec(0.9, 0.3, 0.8, 128, track.KeyOf(1), "house")},
			{rec(0.6, 0.6, 0.6, 110, track.KeyOf(4), "jazz")},
		}
		g := newGenerator(42)
		for n := 1; n <= 4; n++ {
			out, err := g.Generate(c, n)
			require.NoError(t, err)
			assert.Regexp(t, `^A .+ track( with .+ influence)?, \w+ energy, \w+ mood, \w+ danceability, and \w+ tempo in a \S+ key\.$`, out)
		}
	})

	t.Run("FixedSeedIsDeterministic", func(t *testing.T) {
		t.Parallel()
		c := track.Collection{
			{
				rec(0.2, 0.8, 0.4, 95, track.KeyOf(9), "indie rock", "indie"),
				rec(0.9, 0.3, 0.8, 128, track.KeyOf(1), "house", "techno"),
				rec(0.6, 0.1, 0.2, 70, nil, "jazz"),
			},
			{rec(0.45, 0.55, 0.65, 100, track.KeyOf(5), "pop", "dance pop")},
		}
		a, b := newGenerator(1234), newGenerator(1234)
		for range 50 {
			for n := 1; n <= 3; n++ {
				outA, err := a.Generate(c, n)
				require.NoError(t, err)
				outB, err := b.Generate(c, n)
				require.NoError(t, err)
				require.Equal(t, outA, outB)
			}
		}
	})
}
