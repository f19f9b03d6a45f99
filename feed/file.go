package feed

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/must"
	"github.com/xeptore/promptgen/track"
)

// LoadFile reads previously gathered track data. The document is a list of
// playlists, each a list of objects carrying "audio_features" and "genres"
// and optionally "track_info".
func LoadFile(filePath string, logger zerolog.Logger) (track.Collection, error) {
	data, err := os.ReadFile(filePath)
	if nil != err {
		flawP := flaw.P{"file_path": filePath, "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to read track data file: %v", err)).Append(flawP)
	}

	c, err := Parse(data, logger)
	if nil != err {
		return nil, must.BeFlaw(err).Append(flaw.P{"file_path": filePath})
	}
	return c, nil
}

// Parse decodes a track data document. Items lacking one of energy, valence,
// danceability or tempo are skipped.
func Parse(data []byte, logger zerolog.Logger) (track.Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, flaw.From(errors.New("track data is not valid JSON"))
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, flaw.From(errors.New("track data must be a list of playlists")).Append(flaw.P{"type": root.Type.String()})
	}

	var (
		out    track.Collection
		outErr error
	)
	root.ForEach(func(pi, pl gjson.Result) bool {
		if !pl.IsArray() {
			outErr = flaw.From(errors.New("playlist must be a list of tracks")).Append(flaw.P{"playlist_index": pi.Int(), "type": pl.Type.String()})
			return false
		}

		items := pl.Array()
		playlist := make(track.Playlist, 0, len(items))
		for ti, item := range items {
			rec, ok := parseRecord(item)
			if !ok {
				logger.Warn().Int64("playlist_index", pi.Int()).Int("track_index", ti).Msg("Track has incomplete audio features. Skipping track")
				continue
			}
			playlist = append(playlist, rec)
		}
		out = append(out, playlist)
		return true
	})
	if nil != outErr {
		return nil, outErr
	}
	return out, nil
}

func parseRecord(item gjson.Result) (track.Record, bool) {
	fields := gjson.GetMany(item.Get("audio_features").Raw, "energy", "valence", "danceability", "tempo", "key")
	for _, f := range fields[:4] {
		if f.Type != gjson.Number {
			return track.Record{}, false //nolint:exhaustruct
		}
	}

	var key *int
	if f := fields[4]; f.Type == gjson.Number {
		if k := int(f.Int()); k >= 0 && k <= 11 {
			key = &k
		}
	}

	genres := lo.FilterMap(item.Get("genres").Array(), func(g gjson.Result, _ int) (string, bool) {
		return g.String(), g.Type == gjson.String && g.String() != ""
	})

	return track.Record{
		ID:     firstString(item, "track_info.id", "id"),
		Title:  firstString(item, "track_info.name", "title"),
		Artist: firstString(item, "track_info.artists.0.name", "artist"),
		Features: track.Features{
			Energy:       fields[0].Float(),
			Valence:      fields[1].Float(),
			Danceability: fields[2].Float(),
			Tempo:        fields[3].Float(),
			Key:          key,
		},
		Genres: genres,
	}, true
}

func firstString(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := item.Get(p); v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}
