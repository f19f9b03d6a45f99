package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/cache"
	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/log"
	"github.com/xeptore/promptgen/must"
	"github.com/xeptore/promptgen/sliceutil"
	"github.com/xeptore/promptgen/track"
)

type trackArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type trackResponse struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Artists []trackArtist `json:"artists"`
}

// Pointers tell absent features apart from zero values.
type audioFeaturesResponse struct {
	Energy       *float64 `json:"energy"`
	Valence      *float64 `json:"valence"`
	Danceability *float64 `json:"danceability"`
	Tempo        *float64 `json:"tempo"`
	Key          *int     `json:"key"`
}

func (r *audioFeaturesResponse) features() (track.Features, bool) {
	if nil == r.Energy || nil == r.Valence || nil == r.Danceability || nil == r.Tempo {
		return track.Features{}, false //nolint:exhaustruct
	}
	key := r.Key
	// -1 means no key was detected.
	if nil != key && (*key < 0 || *key > 11) {
		key = nil
	}
	return track.Features{
		Energy:       *r.Energy,
		Valence:      *r.Valence,
		Danceability: *r.Danceability,
		Tempo:        *r.Tempo,
		Key:          key,
	}, true
}

type artistResponse struct {
	Genres []string `json:"genres"`
}

var passthroughErrs = []error{ErrUnauthorized, ErrNotFound, ErrTooManyRequests, context.DeadlineExceeded, context.Canceled}

func isPassthrough(err error) bool {
	_, ok := errutil.IsAny(err, passthroughErrs[0], passthroughErrs[1:]...)
	return ok
}

func (c *Client) getTrack(ctx context.Context, id string) (*trackResponse, error) {
	respBytes, err := c.get(ctx, "track", "/tracks/"+url.PathEscape(id), nil, config.GetTrackRequestTimeout)
	if nil != err {
		if isPassthrough(err) {
			return nil, err
		}
		return nil, must.BeFlaw(err).Append(flaw.P{"track_id": id})
	}

	var respBody trackResponse
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		flawP := flaw.P{"track_id": id, "response_body": string(respBytes), "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to decode track response: %v", err)).Append(flawP)
	}
	return &respBody, nil
}

func (c *Client) getAudioFeatures(ctx context.Context, id string) (*track.Features, error) {
	respBytes, err := c.get(ctx, "audio features", "/audio-features/"+url.PathEscape(id), nil, config.GetAudioFeaturesRequestTimeout)
	if nil != err {
		if isPassthrough(err) {
			return nil, err
		}
		return nil, must.BeFlaw(err).Append(flaw.P{"track_id": id})
	}

	var respBody *audioFeaturesResponse
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		flawP := flaw.P{"track_id": id, "response_body": string(respBytes), "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to decode audio features response: %v", err)).Append(flawP)
	}
	if nil == respBody {
		return nil, ErrFeaturesUnavailable
	}
	features, ok := respBody.features()
	if !ok {
		return nil, ErrFeaturesUnavailable
	}
	return &features, nil
}

func (c *Client) fetchArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	respBytes, err := c.get(ctx, "artist", "/artists/"+url.PathEscape(artistID), nil, config.GetArtistRequestTimeout)
	if nil != err {
		if isPassthrough(err) {
			return nil, err
		}
		return nil, must.BeFlaw(err).Append(flaw.P{"artist_id": artistID})
	}

	var respBody artistResponse
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		flawP := flaw.P{"artist_id": artistID, "response_body": string(respBytes), "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to decode artist response: %v", err)).Append(flawP)
	}
	if nil == respBody.Genres {
		respBody.Genres = []string{}
	}
	return respBody.Genres, nil
}

func (c *Client) artistGenres(ctx context.Context, artistID string) ([]string, error) {
	if nil == c.cache {
		return c.fetchArtistGenres(ctx, artistID)
	}
	item, err := c.cache.ArtistGenres.Fetch(
		artistID,
		cache.DefaultArtistGenresTTL,
		func() ([]string, error) { return c.fetchArtistGenres(ctx, artistID) },
	)
	if nil != err {
		return nil, err
	}
	return item.Value(), nil
}

// TrackData assembles the record of a single track: its metadata, its audio
// features and the genres of its primary artist. It fails when the track or
// its features cannot be retrieved. A failed artist lookup leaves the genres
// empty instead.
func (c *Client) TrackData(ctx context.Context, id string) (*track.Record, error) {
	if nil == c.cache {
		return c.fetchTrackData(ctx, id)
	}
	item, err := c.cache.Tracks.Fetch(
		id,
		cache.DefaultTrackTTL,
		func() (*track.Record, error) { return c.fetchTrackData(ctx, id) },
	)
	if nil != err {
		return nil, err
	}
	return item.Value(), nil
}

func (c *Client) fetchTrackData(ctx context.Context, id string) (*track.Record, error) {
	info, err := c.getTrack(ctx, id)
	if nil != err {
		return nil, err
	}

	features, err := c.getAudioFeatures(ctx, id)
	if nil != err {
		return nil, err
	}

	genres := []string{}
	if len(info.Artists) > 0 && info.Artists[0].ID != "" {
		artistID := info.Artists[0].ID
		g, err := c.artistGenres(ctx, artistID)
		if nil != err {
			if errutil.IsContext(ctx) {
				return nil, ctx.Err()
			}
			c.logger.
				Warn().
				Str("track_id", id).
				Str("artist_id", artistID).
				Func(log.Flaw(err)).
				Msg("Failed to get artist genres. Continuing without genres")
		} else {
			genres = g
		}
	}

	return &track.Record{
		ID:       id,
		Title:    info.Name,
		Artist:   strings.Join(sliceutil.Map(info.Artists, func(a trackArtist) string { return a.Name }), ", "),
		Features: *features,
		Genres:   genres,
	}, nil
}
