// Package feed gathers track records for a list of playlists from a Source.
package feed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/log"
	"github.com/xeptore/promptgen/track"
)

// Source supplies playlist contents and per-track data. TrackData returns a
// non-nil error or a nil record for tracks that are unavailable.
type Source interface {
	PlaylistTrackIDs(ctx context.Context, playlistID string) ([]string, error)
	TrackData(ctx context.Context, trackID string) (*track.Record, error)
}

const progressEvery = 10

// Collect fetches every track of every playlist, one request at a time.
// Failures are logged and skipped: a playlist that cannot be listed
// contributes an empty playlist, a track that cannot be fetched is left out.
// Only context cancellation ends the run early, in which case the records
// collected so far are returned along with the context error.
func Collect(ctx context.Context, src Source, playlistIDs []string, logger zerolog.Logger) (track.Collection, error) {
	out := make(track.Collection, 0, len(playlistIDs))
	for _, playlistID := range playlistIDs {
		if errutil.IsContext(ctx) {
			return out, ctx.Err()
		}

		playlist, err := collectPlaylist(ctx, src, playlistID, logger.With().Str("playlist_id", playlistID).Logger())
		out = append(out, playlist)
		if nil != err {
			return out, err
		}

		if len(out)%progressEvery == 0 {
			logger.Info().Int("playlists", len(out)).Msgf("Playlist length at %d", len(out))
		}
	}
	return out, nil
}

func collectPlaylist(ctx context.Context, src Source, playlistID string, logger zerolog.Logger) (track.Playlist, error) {
	trackIDs, err := src.PlaylistTrackIDs(ctx, playlistID)
	if nil != err {
		if errutil.IsContext(ctx) {
			return track.Playlist{}, ctx.Err()
		}
		logger.Error().Func(log.Flaw(err)).Msg("Failed to list playlist tracks. Skipping playlist")
		return track.Playlist{}, nil
	}

	logger.Info().Int("tracks", len(trackIDs)).Msgf("Analyzing %d tracks", len(trackIDs))

	playlist := make(track.Playlist, 0, len(trackIDs))
	for _, trackID := range trackIDs {
		rec, err := src.TrackData(ctx, trackID)
		if nil != err {
			if errutil.IsContext(ctx) {
				return playlist, ctx.Err()
			}
			logger.Warn().Str("track_id", trackID).Func(log.Flaw(err)).Msg("Failed to get track data. Skipping track")
			continue
		}
		if nil == rec {
			logger.Warn().Str("track_id", trackID).Msg("Track data is unavailable. Skipping track")
			continue
		}
		playlist = append(playlist, *rec)
	}

	logger.Debug().Int("kept", len(playlist)).Int("skipped", len(trackIDs)-len(playlist)).Msg("Playlist analyzed")
	return playlist, nil
}
