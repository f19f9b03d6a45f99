package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/must"
)

const userPlaylistsPageSize = 50

type userPlaylistsResponse struct {
	Total int `json:"total"`
	Items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
}

func (c *Client) userPlaylistsPage(ctx context.Context, userID, name string, page int) (id string, remaining int, err error) {
	reqParams := make(url.Values, 2)
	reqParams.Add("limit", strconv.Itoa(userPlaylistsPageSize))
	reqParams.Add("offset", strconv.Itoa(page*userPlaylistsPageSize))
	flawP := flaw.P{"user_id": userID, "page": page}

	respBytes, err := c.get(ctx, "user playlists page", "/users/"+url.PathEscape(userID)+"/playlists", reqParams, config.GetUserPlaylistsPageTimeout)
	if nil != err {
		if isPassthrough(err) {
			return "", 0, err
		}
		return "", 0, must.BeFlaw(err).Append(flawP)
	}

	var respBody userPlaylistsResponse
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		flawP["response_body"] = string(respBytes)
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return "", 0, flaw.From(fmt.Errorf("failed to decode user playlists page response: %v", err)).Append(flawP)
	}
	thisPageItems := len(respBody.Items)
	if thisPageItems == 0 {
		return "", 0, os.ErrNotExist
	}

	for _, v := range respBody.Items {
		if v.Name == name {
			return v.ID, 0, nil
		}
	}
	return "", respBody.Total - (thisPageItems + page*userPlaylistsPageSize), nil
}

// FolderPlaylistID finds the public playlist of userID named name. The Web
// API does not expose the folders of the desktop client, so a playlist
// grouping tracks under that name stands in for one.
func (c *Client) FolderPlaylistID(ctx context.Context, userID, name string) (string, error) {
	for i := 0; ; i++ {
		id, rem, err := c.userPlaylistsPage(ctx, userID, name, i)
		if nil != err {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			if isPassthrough(err) {
				return "", err
			}
			return "", must.BeFlaw(err).Append(flaw.P{"name": name})
		}
		if id != "" {
			return id, nil
		}
		if rem <= 0 {
			break
		}
	}
	return "", ErrFolderNotFound
}
