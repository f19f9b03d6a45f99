package config

import "time"

var (
	TokenRequestTimeout            = 5 * time.Second
	GetPlaylistPageRequestTimeout  = 5 * time.Second
	GetTrackRequestTimeout         = 5 * time.Second
	GetAudioFeaturesRequestTimeout = 5 * time.Second
	GetArtistRequestTimeout        = 3 * time.Second
	GetUserPlaylistsPageTimeout    = 5 * time.Second
	InFlightRequestsGracePeriod    = 5 * time.Second
)
