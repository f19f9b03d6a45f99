package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const playlistURLMarker = "spotify.com/playlist"

func validatePlaylistURL(ans any) error {
	if s, ok := ans.(string); !ok || !strings.Contains(s, playlistURLMarker) {
		return errors.New("ensure url contains " + playlistURLMarker)
	}
	return nil
}

// askPlaylistURL keeps asking on the terminal until the answer looks like a
// playlist URL.
func askPlaylistURL() (string, error) {
	var answer string
	q := &survey.Input{ //nolint:exhaustruct
		Message: "Enter spotify playlist url:",
	}
	err := survey.AskOne(
		q,
		&answer,
		survey.WithValidator(survey.Required),
		survey.WithValidator(validatePlaylistURL),
		survey.WithStdio(os.Stdin, os.Stderr, os.Stderr),
	)
	if nil != err {
		if errors.Is(err, terminal.InterruptErr) {
			return "", context.Canceled
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
