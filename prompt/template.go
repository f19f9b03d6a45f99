package prompt

import (
	"strings"
)

// Render fills the prompt template. The influence clause is only written when
// more than one genre was requested and more than one distinct genre remains.
func Render(d Draw, genres []string, requested int, v Vocabulary) string {
	var sb strings.Builder
	sb.WriteString("A ")
	sb.WriteString(genres[0])
	sb.WriteString(" track")
	if requested > 1 && len(genres) > 1 {
		sb.WriteString(" with ")
		sb.WriteString(strings.Join(genres[1:], " and "))
		sb.WriteString(" influence")
	}
	sb.WriteString(", ")
	sb.WriteString(MapFeatureToTerm(d.Energy, v.Energy))
	sb.WriteString(" energy, ")
	sb.WriteString(MapFeatureToTerm(d.Valence, v.Valence))
	sb.WriteString(" mood, ")
	sb.WriteString(MapFeatureToTerm(d.Danceability, v.Danceability))
	sb.WriteString(" danceability, and ")
	sb.WriteString(MapFeatureToTerm(d.Tempo, v.Tempo))
	sb.WriteString(" tempo in a ")
	sb.WriteString(KeyName(d.Key, v.Keys))
	sb.WriteString(" key.")
	return sb.String()
}
