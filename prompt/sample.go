package prompt

import (
	"math/rand/v2"
	"sync"

	"github.com/samber/lo"

	"github.com/xeptore/promptgen/track"
)

// Draw holds one independently sampled value per audio feature.
type Draw struct {
	Energy       float64
	Valence      float64
	Danceability float64
	Tempo        float64
	Key          *int
}

type GenreCount struct {
	Genre string
	Count int
}

// GenreTable lists distinct genres in the order they were first seen.
type GenreTable []GenreCount

func (t GenreTable) Total() int {
	var n int
	for _, v := range t {
		n += v.Count
	}
	return n
}

// GenreCounts counts, per distinct genre, the number of tracks listing it.
func GenreCounts(pool []track.Record) GenreTable {
	var (
		out   GenreTable
		index = make(map[string]int)
	)
	for _, r := range pool {
		for _, g := range lo.Uniq(r.Genres) {
			if i, ok := index[g]; ok {
				out[i].Count++
				continue
			}
			index[g] = len(out)
			out = append(out, GenreCount{Genre: g, Count: 1})
		}
	}
	return out
}

// Sampler draws values from a pool of tracks with replacement. It is safe for
// concurrent use.
type Sampler struct {
	mux sync.Mutex
	rng *rand.Rand
}

func NewSampler(src rand.Source) *Sampler {
	return &Sampler{mux: sync.Mutex{}, rng: rand.New(src)} //nolint:gosec
}

func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Features picks a uniformly random track per feature. Draw order is energy,
// valence, danceability, tempo, key.
func (s *Sampler) Features(pool []track.Record) (Draw, error) {
	if len(pool) == 0 {
		return Draw{}, ErrEmptyTrackPool //nolint:exhaustruct
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	var d Draw
	d.Energy = pool[s.rng.IntN(len(pool))].Features.Energy
	d.Valence = pool[s.rng.IntN(len(pool))].Features.Valence
	d.Danceability = pool[s.rng.IntN(len(pool))].Features.Danceability
	d.Tempo = pool[s.rng.IntN(len(pool))].Features.Tempo
	d.Key = pool[s.rng.IntN(len(pool))].Features.Key
	return d, nil
}

// Genres draws n genres weighted by their counts, then drops repeats keeping
// the first occurrence. The first element is the primary genre.
func (s *Sampler) Genres(table GenreTable, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidGenreCount
	}
	total := table.Total()
	if total == 0 {
		return nil, ErrEmptyGenrePool
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	drawn := make([]string, 0, n)
	for range n {
		drawn = append(drawn, table.pick(s.rng.IntN(total)))
	}
	return lo.Uniq(drawn), nil
}

func (t GenreTable) pick(r int) string {
	for _, v := range t {
		if r < v.Count {
			return v.Genre
		}
		r -= v.Count
	}
	panic("genre draw exceeded table total")
}
