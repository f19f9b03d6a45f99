// Package spotify reads playlists, tracks, audio features and artist genres
// from the Spotify Web API.
package spotify

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xeptore/promptgen/cache"
	"github.com/xeptore/promptgen/waitqueue"
)

const DefaultBaseURL = "https://api.spotify.com/v1"

type Client struct {
	transport http.RoundTripper
	baseURL   string
	market    string
	queue     *waitqueue.WaitQueue
	cache     *cache.Cache
	logger    zerolog.Logger
}

type Option func(c *Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithMarket sets the ISO 3166-1 country code used for track relinking.
func WithMarket(market string) Option {
	return func(c *Client) { c.market = market }
}

// WithQueue paces every request through q.
func WithQueue(q *waitqueue.WaitQueue) Option {
	return func(c *Client) { c.queue = q }
}

func WithCache(ch *cache.Cache) Option {
	return func(c *Client) { c.cache = ch }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient wraps an HTTP client that already authorizes requests, such as
// the one returned by NewHTTPClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	transport := httpClient.Transport
	if nil == transport {
		transport = http.DefaultTransport
	}
	c := &Client{
		transport: transport,
		baseURL:   DefaultBaseURL,
		market:    "",
		queue:     nil,
		cache:     nil,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
