package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/mathutil"
	"github.com/xeptore/promptgen/must"
)

const (
	playlistTracksPageSize = 100
	playlistTracksFields   = "total,items(track(id,type,is_local))"
)

type playlistTracksResponse struct {
	Total int                  `json:"total"`
	Items []playlistTracksItem `json:"items"`
}

type playlistTracksItem struct {
	Track *struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		IsLocal bool   `json:"is_local"`
	} `json:"track"`
}

func (r *playlistTracksResponse) FlawP() flaw.P {
	items := make([]flaw.P, 0, len(r.Items))
	for _, v := range r.Items {
		if nil == v.Track {
			items = append(items, flaw.P{"track": nil})
			continue
		}
		items = append(items, flaw.P{"id": v.Track.ID, "type": v.Track.Type, "is_local": v.Track.IsLocal})
	}
	return flaw.P{"total": r.Total, "items": items}
}

func (c *Client) playlistTrackIDsPage(ctx context.Context, id string, page int) (ids []string, remaining int, err error) {
	reqParams := make(url.Values, 4)
	reqParams.Add("fields", playlistTracksFields)
	reqParams.Add("limit", strconv.Itoa(playlistTracksPageSize))
	reqParams.Add("offset", strconv.Itoa(page*playlistTracksPageSize))
	flawP := flaw.P{"playlist_id": id, "page": page}

	respBytes, err := c.get(ctx, "playlist tracks page", "/playlists/"+url.PathEscape(id)+"/tracks", reqParams, config.GetPlaylistPageRequestTimeout)
	if nil != err {
		if _, ok := errutil.IsAny(err, ErrUnauthorized, ErrNotFound, ErrTooManyRequests, context.DeadlineExceeded, context.Canceled); ok {
			return nil, 0, err
		}
		return nil, 0, must.BeFlaw(err).Append(flawP)
	}

	var respBody playlistTracksResponse
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		flawP["response_body"] = string(respBytes)
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, 0, flaw.From(fmt.Errorf("failed to decode playlist tracks page response: %v", err)).Append(flawP)
	}
	thisPageItems := len(respBody.Items)
	if thisPageItems == 0 {
		return nil, 0, os.ErrNotExist
	}
	flawP["response_body"] = respBody.FlawP()

	if page == 0 {
		c.logger.
			Debug().
			Str("playlist_id", id).
			Int("total", respBody.Total).
			Int("pages", mathutil.CeilInts(respBody.Total, playlistTracksPageSize)).
			Msg("Listing playlist tracks")
	}

	ids = lo.FilterMap(respBody.Items, func(v playlistTracksItem, _ int) (string, bool) {
		if nil == v.Track || v.Track.IsLocal || v.Track.ID == "" {
			return "", false
		}
		return v.Track.ID, v.Track.Type == "track"
	})

	return ids, respBody.Total - (thisPageItems + page*playlistTracksPageSize), nil
}

// PlaylistTrackIDs lists the IDs of all tracks in a playlist. Local files,
// podcast episodes and unavailable entries are left out.
func (c *Client) PlaylistTrackIDs(ctx context.Context, id string) ([]string, error) {
	var ids []string
	var loopFlawPs []flaw.P
	flawP := flaw.P{"playlist_id": id, "loop_flaw_payloads": loopFlawPs}
	for i := 0; ; i++ {
		loopFlawP := flaw.P{"page": i}
		loopFlawPs = append(loopFlawPs, loopFlawP)
		flawP["loop_flaw_payloads"] = loopFlawPs
		pageIDs, rem, err := c.playlistTrackIDsPage(ctx, id, i)
		if nil != err {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			if _, ok := errutil.IsAny(err, ErrUnauthorized, ErrNotFound, ErrTooManyRequests, context.DeadlineExceeded, context.Canceled); ok {
				return nil, err
			}
			return nil, must.BeFlaw(err).Append(flawP)
		}
		loopFlawP["remaining"] = rem

		ids = append(ids, pageIDs...)

		if rem <= 0 {
			break
		}
	}

	return ids, nil
}
