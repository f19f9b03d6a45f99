package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/xeptore/promptgen/prompt"
)

type Config struct {
	Market      string     `json:"market"       yaml:"market"`
	GenreCounts []int      `json:"genre_counts" yaml:"genre_counts"`
	Rounds      int        `json:"rounds"       yaml:"rounds"`
	Seed        uint64     `json:"seed"         yaml:"seed"`
	Playlists   []string   `json:"playlists"    yaml:"playlists"`
	UserID      string     `json:"user_id"      yaml:"user_id"`
	Folder      string     `json:"folder"       yaml:"folder"`
	TracksFile  string     `json:"tracks_file"  yaml:"tracks_file"`
	LogLevel    string     `json:"log_level"    yaml:"log_level"`
	Vocabulary  Vocabulary `json:"vocabulary"   yaml:"vocabulary"`
}

// Vocabulary overrides individual tables of the default vocabulary. Tables
// left empty keep their defaults.
type Vocabulary struct {
	Energy       prompt.BucketMap `json:"energy"       yaml:"energy"`
	Valence      prompt.BucketMap `json:"valence"      yaml:"valence"`
	Danceability prompt.BucketMap `json:"danceability" yaml:"danceability"`
	Tempo        prompt.BucketMap `json:"tempo"        yaml:"tempo"`
	Keys         []string         `json:"keys"         yaml:"keys"`
}

func Default() *Config {
	return &Config{
		Market:      "",
		GenreCounts: []int{1, 2, 3},
		Rounds:      2,
		Seed:        0,
		Playlists:   nil,
		UserID:      "",
		Folder:      "",
		TracksFile:  "",
		LogLevel:    zerolog.LevelInfoValue,
		Vocabulary:  Vocabulary{}, //nolint:exhaustruct
	}
}

// PromptVocabulary merges the configured overrides onto the default tables.
func (cfg *Config) PromptVocabulary() prompt.Vocabulary {
	v := prompt.DefaultVocabulary()
	if len(cfg.Vocabulary.Energy) > 0 {
		v.Energy = cfg.Vocabulary.Energy
	}
	if len(cfg.Vocabulary.Valence) > 0 {
		v.Valence = cfg.Vocabulary.Valence
	}
	if len(cfg.Vocabulary.Danceability) > 0 {
		v.Danceability = cfg.Vocabulary.Danceability
	}
	if len(cfg.Vocabulary.Tempo) > 0 {
		v.Tempo = cfg.Vocabulary.Tempo
	}
	if len(cfg.Vocabulary.Keys) == len(v.Keys) {
		copy(v.Keys[:], cfg.Vocabulary.Keys)
	}
	return v
}

func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if nil != err {
		return zerolog.InfoLevel
	}
	return lvl
}

func (cfg *Config) Validate() error {
	if len(cfg.GenreCounts) == 0 {
		return errors.New("genre counts is empty")
	}
	for _, n := range cfg.GenreCounts {
		if n < 1 {
			return fmt.Errorf("genre count %d is less than 1", n)
		}
	}

	if cfg.Rounds < 1 {
		return fmt.Errorf("rounds %d is less than 1", cfg.Rounds)
	}

	if (cfg.UserID == "") != (cfg.Folder == "") {
		return errors.New("user ID and folder must be set together")
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); nil != err {
		return fmt.Errorf("invalid log level %q: %v", cfg.LogLevel, err)
	}

	if n := len(cfg.Vocabulary.Keys); n != 0 && n != 12 {
		return fmt.Errorf("vocabulary keys must list all 12 pitch classes, got %d", n)
	}

	if err := cfg.PromptVocabulary().Validate(); nil != err {
		return fmt.Errorf("invalid vocabulary: %v", err)
	}

	return nil
}

func FromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if nil != err {
		return nil, fmt.Errorf("failed to read config file %q: %v", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %v", filePath, err)
	}

	if err := cfg.Validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

func FromString(data string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(data), cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.Validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}
