package errors

import (
	"sort"
	"strings"
)

// MaxSuggestionDistance is the maximum edit distance for a suggestion to be considered.
const MaxSuggestionDistance = 3

// MaxSuggestions is the maximum number of suggestions to return.
const MaxSuggestions = 3

// Suggestion represents a suggested correction with its edit distance.
type Suggestion struct {
	Value    string
	Distance int
}

// SuggestSimilar finds candidates close to target, ignoring case. A candidate
// equal to target apart from case is the best possible suggestion.
func SuggestSimilar(target string, candidates []string) []Suggestion {
	if target == "" {
		return nil
	}
	lower := strings.ToLower(target)
	threshold := MaxSuggestionDistance
	switch {
	case len(lower) <= 3:
		threshold = 1
	case len(lower) <= 5:
		threshold = 2
	}

	var suggestions []Suggestion
	for _, candidate := range candidates {
		if candidate == "" || candidate == target {
			continue
		}
		dist := levenshteinDistance(lower, strings.ToLower(candidate))
		if dist <= threshold {
			suggestions = append(suggestions, Suggestion{Value: candidate, Distance: dist})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Value < suggestions[j].Value
	})
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// FormatSuggestions formats suggestions as a user-friendly string.
// Returns empty string if no suggestions.
func FormatSuggestions(suggestions []Suggestion) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean " + quote(suggestions[0].Value) + "?"
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = quote(s.Value)
	}
	return "did you mean one of: " + strings.Join(quoted, ", ") + "?"
}

func quote(s string) string {
	return `"` + s + `"`
}

// levenshteinDistance computes the edit distance between two strings using
// two rows instead of a full matrix.
func levenshteinDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
