package spotify

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrInvalidLink = errors.New("not a Spotify playlist link")
	idPattern      = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)
)

// IsLink reports whether text is an open.spotify.com playlist URL.
func IsLink(text string) bool {
	_, ok := linkPlaylistID(text)
	return ok
}

func linkPlaylistID(text string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(text))
	if nil != err {
		return "", false
	}

	switch u.Scheme {
	case "https", "http":
	default:
		return "", false
	}

	switch u.Host {
	case "open.spotify.com", "play.spotify.com":
	default:
		return "", false
	}

	pathParts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(pathParts) == 3 && strings.HasPrefix(pathParts[0], "intl-") {
		pathParts = pathParts[1:]
	}
	if len(pathParts) != 2 || pathParts[0] != "playlist" || !idPattern.MatchString(pathParts[1]) {
		return "", false
	}
	return pathParts[1], true
}

// ParsePlaylistID extracts the playlist ID from a playlist URL, a
// spotify:playlist: URI or a bare ID.
func ParsePlaylistID(text string) (string, error) {
	text = strings.TrimSpace(text)
	if id, ok := linkPlaylistID(text); ok {
		return id, nil
	}
	if id, ok := strings.CutPrefix(text, "spotify:playlist:"); ok && idPattern.MatchString(id) {
		return id, nil
	}
	if idPattern.MatchString(text) {
		return text, nil
	}
	return "", ErrInvalidLink
}
