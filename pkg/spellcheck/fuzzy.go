package spellcheck

import (
	"log"
	"sort"
	"strings"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/hbollon/go-edlib"
	"github.com/sajari/fuzzy"
)

// DefaultMaxSuggestions is the number of suggestions returned per word
const DefaultMaxSuggestions = 5

// Suggester proposes corrections for flagged words. Fixes computed from the
// dictionary come first; a fuzzy model trained on the dictionary words fills up the rest.
type Suggester struct {
	model *fuzzy.Model
	limit int
}

// NewSuggester trains a fuzzy model with the words of data
func NewSuggester(data *spelling.SpellingData, limit int) *Suggester {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	// Create a new fuzzy model
	model := fuzzy.NewModel()

	// Set the model parameters
	model.SetDepth(2)     // Maximum edit distance
	model.SetThreshold(1) // Minimum frequency threshold
	model.SetUseAutocomplete(false)

	wordCount := 0
	for _, list := range []*spelling.WordList{data.Words(), data.CaseSensitiveWords()} {
		for _, word := range list.Words() {
			model.TrainWord(strings.ToLower(word))
			wordCount++
		}
	}

	log.Printf("[SpellCheck] Trained fuzzy model with %d words", wordCount)

	return &Suggester{model: model, limit: limit}
}

// Suggest returns corrections for value. data is the snapshot the value was
// checked against; it may hold words the fuzzy model was not trained with.
func (s *Suggester) Suggest(data *spelling.SpellingData, value string, identifier bool) []string {
	var suggestions []string
	seen := make(map[string]struct{})

	add := func(v string) bool {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok || strings.EqualFold(v, value) {
			return true
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, v)
		return len(suggestions) < s.limit
	}

	for _, fix := range spelling.NewFixProvider(data).Fixes(value, identifier) {
		if !add(fix.Value) {
			return suggestions
		}
	}

	if s.model == nil {
		return suggestions
	}

	lower := strings.ToLower(value)
	candidates := s.model.SpellCheckSuggestions(lower, s.limit*2)
	rankByDistance(lower, candidates)

	casing := spelling.GetTextCasing(value)
	for _, c := range candidates {
		if !add(spelling.SetTextCasing(c, casing)) {
			break
		}
	}

	return suggestions
}

// rankByDistance orders candidates by their optimal string alignment distance to value
func rankByDistance(value string, candidates []string) {
	distances := make(map[string]int, len(candidates))
	for _, c := range candidates {
		distances[c] = edlib.OSADamerauLevenshteinDistance(value, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return distances[candidates[i]] < distances[candidates[j]]
	})
}
