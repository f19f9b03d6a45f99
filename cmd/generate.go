package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/xeptore/promptgen/cache"
	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/ctxutil"
	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/feed"
	"github.com/xeptore/promptgen/log"
	"github.com/xeptore/promptgen/must"
	"github.com/xeptore/promptgen/prompt"
	"github.com/xeptore/promptgen/ratelimit"
	"github.com/xeptore/promptgen/spotify"
	"github.com/xeptore/promptgen/track"
	"github.com/xeptore/promptgen/waitqueue"
)

func applyFlags(cliCtx *cli.Context, cfg *config.Config) {
	if cliCtx.IsSet(flagGenres) {
		cfg.GenreCounts = cliCtx.IntSlice(flagGenres)
	}
	if cliCtx.IsSet(flagRounds) {
		cfg.Rounds = cliCtx.Int(flagRounds)
	}
	if cliCtx.IsSet(flagSeed) {
		cfg.Seed = cliCtx.Uint64(flagSeed)
	}
	if cliCtx.IsSet(flagMarket) {
		cfg.Market = cliCtx.String(flagMarket)
	}
	if cliCtx.IsSet(flagTracksFile) {
		cfg.TracksFile = cliCtx.String(flagTracksFile)
	}
	if cliCtx.IsSet(flagUser) {
		cfg.UserID = cliCtx.String(flagUser)
	}
	if cliCtx.IsSet(flagFolder) {
		cfg.Folder = cliCtx.String(flagFolder)
	}
	if cliCtx.IsSet(flagLogLevel) {
		cfg.LogLevel = cliCtx.String(flagLogLevel)
	}
	cfg.Playlists = append(cliCtx.Args().Slice(), cfg.Playlists...)
}

func generate(cliCtx *cli.Context) (err error) {
	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, cliCtx.Bool(flagPackedLogs)).Level(zerolog.InfoLevel)
	cfg, err := loadConfig(cliCtx, logger)
	if nil != err {
		return err
	}
	applyFlags(cliCtx, cfg)
	if err := cfg.Validate(); nil != err {
		return fmt.Errorf("invalid options: %v", err)
	}
	logger = logger.Level(cfg.Level())

	if reportPath := cliCtx.String(flagErrorReport); reportPath != "" {
		defer func() {
			if nil == err || !errutil.IsFlaw(err) {
				return
			}
			if writeErr := writeErrorReport(reportPath, must.BeFlaw(err)); nil != writeErr {
				logger.Error().Func(log.Flaw(writeErr)).Msg("Failed to write error report")
				return
			}
			logger.Info().Str("path", reportPath).Msg("Error report was written")
		}()
	}

	collection, err := collect(ctx, cfg, logger)
	if nil != err {
		if !errors.Is(err, context.Canceled) || collection.Len() == 0 {
			return err
		}
		logger.Warn().Int("tracks", collection.Len()).Msg("Fetching was interrupted. Generating prompts from tracks collected so far")
	}
	logger.Info().Int("playlists", len(collection)).Int("tracks", collection.Len()).Msg("Generating prompts")

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec
	}
	logger.Debug().Uint64("seed", seed).Msg("Seeded sampler")

	gen := prompt.NewGenerator(
		cfg.PromptVocabulary(),
		prompt.NewSeededSampler(seed),
		logger.With().Str("module", "prompt").Logger(),
	)
	return printPrompts(cliCtx.App.Writer, gen, collection, cfg.Rounds, cfg.GenreCounts)
}

func printPrompts(w io.Writer, gen *prompt.Generator, c track.Collection, rounds int, genreCounts []int) error {
	for range rounds {
		for _, n := range genreCounts {
			p, err := gen.Generate(c, n)
			if nil != err {
				return fmt.Errorf("failed to generate prompt with %d genre(s): %w", n, err)
			}
			if _, err := fmt.Fprintf(w, "Prompt with %d genre(s):\n%s\n\n", n, p); nil != err {
				return fmt.Errorf("failed to write prompt: %v", err)
			}
		}
	}
	return nil
}

func collect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (track.Collection, error) {
	if cfg.TracksFile != "" {
		logger.Debug().Str("tracks_file", cfg.TracksFile).Msg("Loading track data from file")
		return feed.LoadFile(cfg.TracksFile, logger.With().Str("module", "feed").Logger())
	}

	// Keeps the token source and request pacer alive for a moment after
	// cancellation so requests already sent can complete.
	clientCtx, cancelClient := ctxutil.WithDelayedTimeout(ctx, config.InFlightRequestsGracePeriod)
	defer cancelClient()

	httpClient, err := spotify.NewHTTPClient(clientCtx, os.Getenv("SPOTIFY_CLIENT_ID"), os.Getenv("SPOTIFY_CLIENT_SECRET"))
	if nil != err {
		if errors.Is(err, spotify.ErrUnauthorized) {
			return nil, errors.New("spotify rejected the client credentials. check SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
		}
		return nil, err
	}

	queue := waitqueue.New(clientCtx, ratelimit.SpotifyWindow, ratelimit.SpotifyRequestsPerWindow, ratelimit.RequestSpacing)
	defer queue.Close()

	c := cache.New()
	defer c.Close()

	client := spotify.NewClient(
		httpClient,
		spotify.WithMarket(cfg.Market),
		spotify.WithQueue(queue),
		spotify.WithCache(c),
		spotify.WithLogger(logger.With().Str("module", "spotify").Logger()),
	)

	playlistIDs, err := resolvePlaylistIDs(ctx, client, cfg, logger)
	if nil != err {
		return nil, err
	}

	return feed.Collect(ctx, client, playlistIDs, logger.With().Str("module", "feed").Logger())
}

func resolvePlaylistIDs(ctx context.Context, client *spotify.Client, cfg *config.Config, logger zerolog.Logger) ([]string, error) {
	refs := cfg.Playlists
	if cfg.UserID != "" {
		id, err := client.FolderPlaylistID(ctx, cfg.UserID, cfg.Folder)
		if nil != err {
			if errors.Is(err, spotify.ErrFolderNotFound) {
				logger.Warn().Str("user_id", cfg.UserID).Str("folder", cfg.Folder).Msgf("Folder '%s' not found", cfg.Folder)
			} else {
				return nil, err
			}
		} else {
			logger.Debug().Str("folder", cfg.Folder).Str("playlist_id", id).Msg("Playlists fetched")
			refs = append(refs, id)
		}
	}

	if len(refs) == 0 {
		u, err := askPlaylistURL()
		if nil != err {
			return nil, err
		}
		refs = []string{u}
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := spotify.ParsePlaylistID(ref)
		if nil != err {
			return nil, fmt.Errorf("invalid playlist %q: %w", ref, err)
		}
		ids = append(ids, id)
	}
	return lo.Uniq(ids), nil
}
