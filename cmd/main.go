package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/xeptore/flaw/v8"
	"gopkg.in/yaml.v3"

	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/constant"
	"github.com/xeptore/promptgen/log"
)

const (
	flagConfigFilePath = "config"
	flagGenres         = "genres"
	flagRounds         = "rounds"
	flagSeed           = "seed"
	flagMarket         = "market"
	flagTracksFile     = "tracks-file"
	flagUser           = "user"
	flagFolder         = "folder"
	flagLogLevel       = "log-level"
	flagPackedLogs     = "packed-logs"
	flagErrorReport    = "error-report"
)

func main() {
	logger := log.NewPretty(os.Stderr).Level(zerolog.TraceLevel)
	defer func() {
		if r := recover(); nil != r {
			logger.Fatal().Func(log.Panic(r)).Msg("Application panicked")
		}
	}()

	if err := godotenv.Load(); nil != err {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Msg(".env file was not found")
		} else {
			logger.Fatal().Err(err).Msg("Failed to load .env file")
		}
	}

	configFlag := &cli.StringFlag{ //nolint:exhaustruct
		Name:     flagConfigFilePath,
		Aliases:  []string{"c"},
		Usage:    "Config file path",
		Required: false,
	}

	//nolint:exhaustruct
	app := &cli.App{
		Name:     "promptgen",
		Version:  constant.Version,
		Compiled: constant.CompileTime,
		Suggest:  true,
		Usage:    "Generate music prompts from the audio features of Spotify playlists",
		Commands: []*cli.Command{
			//nolint:exhaustruct
			{
				Name:      "generate",
				Aliases:   []string{"g"},
				Usage:     "Fetch playlists and print prompts",
				ArgsUsage: "[playlist URL...]",
				Action:    generate,
				Flags: []cli.Flag{
					configFlag,
					//nolint:exhaustruct
					&cli.IntSliceFlag{
						Name:    flagGenres,
						Aliases: []string{"g"},
						Usage:   "Number of genres to request, one prompt per value and round",
					},
					//nolint:exhaustruct
					&cli.IntFlag{
						Name:    flagRounds,
						Aliases: []string{"r"},
						Usage:   "Number of rounds over the genre counts",
					},
					//nolint:exhaustruct
					&cli.Uint64Flag{
						Name:  flagSeed,
						Usage: "Random seed. 0 picks one at random",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:    flagMarket,
						Aliases: []string{"m"},
						Usage:   "ISO 3166-1 alpha-2 market code used for track relinking",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:    flagTracksFile,
						Aliases: []string{"f"},
						Usage:   "Read track data from a JSON file instead of Spotify",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:  flagUser,
						Usage: "Spotify user ID owning the folder playlist",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:  flagFolder,
						Usage: "Name of the user's playlist to analyze",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:    flagLogLevel,
						Aliases: []string{"l"},
						Usage:   "Log level (trace, debug, info, warn, error)",
					},
					//nolint:exhaustruct
					&cli.BoolFlag{
						Name:  flagPackedLogs,
						Usage: "Write compact single-line JSON logs",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:  flagErrorReport,
						Usage: "Write a YAML report of a failed run to this file",
					},
				},
			},
			//nolint:exhaustruct
			{
				Name:    "vocabulary",
				Aliases: []string{"v"},
				Usage:   "Print the effective feature vocabulary",
				Action:  vocabulary,
				Flags:   []cli.Flag{configFlag},
			},
		},
	}

	if err := app.Run(os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			return
		}
		if flawErr := new(flaw.Flaw); errors.As(err, &flawErr) {
			logger.Fatal().Func(log.Flaw(flawErr)).Msg("Application exited with flaw")
			return
		}
		logger.Fatal().Err(err).Msg("Application exited with error")
	}
}

func loadConfig(cliCtx *cli.Context, logger zerolog.Logger) (*config.Config, error) {
	cfgEnv := os.Getenv("CONFIG")
	cfgFilePath := cliCtx.String(flagConfigFilePath)
	switch {
	case cfgFilePath != "" && cfgEnv != "":
		return nil, errors.New("config file path and config environment variable are both set. specify only one")
	case cfgFilePath != "":
		logger.Debug().Str("config_file_path", cfgFilePath).Msg("Loading config from file")
		cfg, err := config.FromFile(cfgFilePath)
		if nil != err {
			return nil, fmt.Errorf("failed to load config file: %v", err)
		}
		return cfg, nil
	case cfgEnv != "":
		logger.Debug().Msg("Loading config from environment variable")
		cfg, err := config.FromString(cfgEnv)
		if nil != err {
			return nil, fmt.Errorf("failed to load config from environment variable: %v", err)
		}
		return cfg, nil
	default:
		logger.Debug().Msg("No config was specified. Using defaults")
		return config.Default(), nil
	}
}

func vocabulary(cliCtx *cli.Context) error {
	logger := log.NewPretty(os.Stderr).Level(zerolog.InfoLevel)
	cfg, err := loadConfig(cliCtx, logger)
	if nil != err {
		return err
	}

	enc := yaml.NewEncoder(cliCtx.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.PromptVocabulary()); nil != err {
		return fmt.Errorf("failed to encode vocabulary: %v", err)
	}
	return enc.Close()
}
