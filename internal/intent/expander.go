package intent

import (
	"fmt"
	"strings"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// MaxExpandedTerms caps the expansion term list.
const MaxExpandedTerms = 20

// maxContextWords limits how many words the optional free-text
// context may contribute.
const maxContextWords = 5

// Expander derives an enlarged search term set from a query. It is a
// pure function over static tables and never fails.
type Expander struct {
	classifier *Classifier
}

// NewExpander creates an expander backed by the given classifier.
func NewExpander(classifier *Classifier) *Expander {
	return &Expander{classifier: classifier}
}

// Expand builds a deduplicated, capped term list from the query's
// matched concept phrases, their registered synonyms, the query's own
// words, a few context words and the detected subcategory's
// vocabulary.
func (e *Expander) Expand(query, context string) domain.QueryExpansion {
	detected := e.classifier.Classify(query)

	var terms []string
	seen := make(map[string]bool)
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, term)
	}

	// Concept phrases first: they are the most specific signals.
	for _, phrase := range detected.MatchedPhrases {
		add(phrase)
	}
	for _, phrase := range detected.MatchedPhrases {
		for _, syn := range synonyms[phrase] {
			add(syn)
		}
	}

	for _, word := range strings.Fields(query) {
		if len(word) > 2 {
			add(word)
		}
	}

	contextWords := 0
	for _, word := range strings.Fields(context) {
		if contextWords >= maxContextWords {
			break
		}
		if len(word) > 2 {
			add(word)
			contextWords++
		}
	}

	if detected.Subcategory != "" {
		for _, term := range subcategoryVocab[detected.Subcategory] {
			add(term)
		}
	}

	if len(terms) > MaxExpandedTerms {
		terms = terms[:MaxExpandedTerms]
	}

	expansion := domain.QueryExpansion{
		ExpandedTerms:    terms,
		DetectedConcepts: detected.MatchedPhrases,
		Confidence:       detected.Confidence,
		Reasoning:        reasoning(detected),
	}
	if detected.Confidence != domain.ConfidenceLow {
		expansion.SuggestedCategory = detected.Category
	}

	return expansion
}

func reasoning(detected domain.DetectedIntent) string {
	if len(detected.MatchedPhrases) == 0 {
		return "no concept phrases recognised; expanded from query words only"
	}
	if detected.Confidence == domain.ConfidenceLow {
		return fmt.Sprintf("matched %d concept phrase(s) but total weight %d is below the filter threshold",
			len(detected.MatchedPhrases), detected.Weight)
	}
	return fmt.Sprintf("matched %d concept phrase(s); classified as %s/%s with %s confidence",
		len(detected.MatchedPhrases), detected.Category, detected.Subcategory, detected.Confidence)
}
