// Package prompt turns a collection of playlists into a one-sentence
// description of a hypothetical track drawn from their empirical
// distributions.
package prompt

import (
	"github.com/rs/zerolog"

	"github.com/xeptore/promptgen/track"
)

type Generator struct {
	vocab   Vocabulary
	sampler *Sampler
	logger  zerolog.Logger
}

func NewGenerator(vocab Vocabulary, sampler *Sampler, logger zerolog.Logger) *Generator {
	return &Generator{
		vocab:   vocab,
		sampler: sampler,
		logger:  logger,
	}
}

// Generate flattens c and samples one prompt asking for up to genreCount
// genres. Fewer genres are used when the draw repeats itself.
func (g *Generator) Generate(c track.Collection, genreCount int) (string, error) {
	if genreCount < 1 {
		return "", ErrInvalidGenreCount
	}

	pool := c.Flatten()
	if len(pool) == 0 {
		return "", ErrEmptyTrackPool
	}

	table := GenreCounts(pool)
	if len(table) == 0 {
		return "", ErrEmptyGenrePool
	}

	d, err := g.sampler.Features(pool)
	if nil != err {
		return "", err
	}

	genres, err := g.sampler.Genres(table, genreCount)
	if nil != err {
		return "", err
	}

	g.logger.
		Trace().
		Int("pool_size", len(pool)).
		Int("distinct_genres", len(table)).
		Float64("energy", d.Energy).
		Float64("valence", d.Valence).
		Float64("danceability", d.Danceability).
		Float64("tempo", d.Tempo).
		Func(func(e *zerolog.Event) {
			if nil != d.Key {
				e.Int("key", *d.Key)
			} else {
				e.Str("key", UnknownKeyLabel)
			}
		}).
		Strs("genres", genres).
		Int("requested_genres", genreCount).
		Msg("Sampled prompt attributes")

	return Render(d, genres, genreCount, g.vocab), nil
}
