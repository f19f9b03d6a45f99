package ratelimit

import (
	"math/rand/v2"
	"time"
)

// Spotify enforces its limit over a rolling 30 second window. The exact
// budget is not published, so stay well below the commonly observed figure.
const (
	SpotifyWindow            = 30 * time.Second
	SpotifyRequestsPerWindow = 90
)

// RequestSpacing is the pause between two consecutive API requests.
func RequestSpacing() time.Duration {
	const (
		from = 50
		to   = 250
	)
	millis := rand.IntN(to-from) + from //nolint:gosec
	return time.Duration(millis) * time.Millisecond
}
