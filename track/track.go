// Package track holds the per-track data a feed produces and the prompt
// generator consumes.
package track

// Features are the audio features of a single track. Energy, Valence and
// Danceability are in [0, 1], Tempo is in beats per minute. Key is the pitch
// class (0 = C .. 11 = B) and nil when the source did not report one.
type Features struct {
	Energy       float64 `json:"energy"       yaml:"energy"`
	Valence      float64 `json:"valence"      yaml:"valence"`
	Danceability float64 `json:"danceability" yaml:"danceability"`
	Tempo        float64 `json:"tempo"        yaml:"tempo"`
	Key          *int    `json:"key"          yaml:"key"`
}

// Record is one track as seen by the generator. ID, Title and Artist are
// descriptive only and never influence sampling.
type Record struct {
	ID       string   `json:"id,omitempty"     yaml:"id,omitempty"`
	Title    string   `json:"title,omitempty"  yaml:"title,omitempty"`
	Artist   string   `json:"artist,omitempty" yaml:"artist,omitempty"`
	Features Features `json:"audio_features"   yaml:"audio_features"`
	Genres   []string `json:"genres"           yaml:"genres"`
}

type Playlist []Record

type Collection []Playlist

// Flatten concatenates all playlists in order. Playlist boundaries are
// dropped, so larger playlists weigh proportionally more.
func (c Collection) Flatten() []Record {
	out := make([]Record, 0, c.Len())
	for _, p := range c {
		out = append(out, p...)
	}
	return out
}

func (c Collection) Len() int {
	var n int
	for _, p := range c {
		n += len(p)
	}
	return n
}

func KeyOf(k int) *int {
	return &k
}
