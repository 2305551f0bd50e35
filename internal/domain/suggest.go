package domain

import (
	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// Suggest returns the candidates closest to name, best match first
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, candidates)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
