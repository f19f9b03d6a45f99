package prompt

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultLabel is used for feature values no bucket covers.
	DefaultLabel = "medium"
	// UnknownKeyLabel is used for absent or out of range pitch classes.
	UnknownKeyLabel = "unknown"
)

type Bucket struct {
	Low   float64 `json:"low"   yaml:"low"`
	High  float64 `json:"high"  yaml:"high"`
	Label string  `json:"label" yaml:"label"`
}

func (b Bucket) contains(v float64) bool {
	return b.Low <= v && v <= b.High
}

// BucketMap is an ordered list of closed intervals. On shared boundaries the
// earlier bucket wins.
type BucketMap []Bucket

func (m BucketMap) validate() error {
	if len(m) == 0 {
		return errors.New("no buckets defined")
	}
	for i, b := range m {
		if b.Label == "" {
			return fmt.Errorf("bucket %d has an empty label", i)
		}
		if b.Low > b.High {
			return fmt.Errorf("bucket %d (%s) has low bound %v greater than high bound %v", i, b.Label, b.Low, b.High)
		}
		if i > 0 && m[i-1].Low > b.Low {
			return fmt.Errorf("bucket %d (%s) is not ordered by low bound", i, b.Label)
		}
	}
	return nil
}

// MapFeatureToTerm returns the label of the first bucket containing value, or
// DefaultLabel when none does.
func MapFeatureToTerm(value float64, m BucketMap) string {
	for _, b := range m {
		if b.contains(value) {
			return b.Label
		}
	}
	return DefaultLabel
}

type Keys [12]string

// KeyName returns the name of pitch class key.
func KeyName(key *int, keys Keys) string {
	if nil == key || *key < 0 || *key >= len(keys) {
		return UnknownKeyLabel
	}
	return keys[*key]
}

// Vocabulary is the immutable set of lookup tables a Generator renders with.
type Vocabulary struct {
	Energy       BucketMap `json:"energy"       yaml:"energy"`
	Valence      BucketMap `json:"valence"      yaml:"valence"`
	Danceability BucketMap `json:"danceability" yaml:"danceability"`
	Tempo        BucketMap `json:"tempo"        yaml:"tempo"`
	Keys         Keys      `json:"keys"         yaml:"keys"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Energy: BucketMap{
			{Low: 0.0, High: 0.3, Label: "low"},
			{Low: 0.3, High: 0.7, Label: "medium"},
			{Low: 0.7, High: 1.0, Label: "high"},
		},
		Valence: BucketMap{
			{Low: 0.0, High: 0.3, Label: "sad"},
			{Low: 0.3, High: 0.7, Label: "neutral"},
			{Low: 0.7, High: 1.0, Label: "happy"},
		},
		Danceability: BucketMap{
			{Low: 0.0, High: 0.3, Label: "low"},
			{Low: 0.3, High: 0.7, Label: "medium"},
			{Low: 0.7, High: 1.0, Label: "high"},
		},
		Tempo: BucketMap{
			{Low: 0, High: 80, Label: "slow"},
			{Low: 80, High: 120, Label: "medium"},
			{Low: 120, High: 200, Label: "fast"},
		},
		Keys: Keys{"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"},
	}
}

func (v Vocabulary) Validate() error {
	tables := []struct {
		name string
		m    BucketMap
	}{
		{"energy", v.Energy},
		{"valence", v.Valence},
		{"danceability", v.Danceability},
		{"tempo", v.Tempo},
	}
	for _, t := range tables {
		if err := t.m.validate(); nil != err {
			return fmt.Errorf("invalid %s table: %v", t.name, err)
		}
	}
	for i, k := range v.Keys {
		if k == "" {
			return errors.New("key name for pitch class " + strconv.Itoa(i) + " is empty")
		}
	}
	return nil
}
