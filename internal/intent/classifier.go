package intent

import (
	"strings"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// Confidence thresholds on the total accumulated weight across all
// matched patterns, not just the winning scope.
const (
	highConfidenceWeight   = 15
	mediumConfidenceWeight = 7
)

// Classifier scores queries against a weighted pattern table.
type Classifier struct {
	patterns []Pattern
}

// NewClassifier creates a classifier with the built-in pattern table.
func NewClassifier() *Classifier {
	return NewClassifierWithPatterns(DefaultPatterns())
}

// NewClassifierWithPatterns creates a classifier with a custom table.
// Declaration order decides ties.
func NewClassifierWithPatterns(patterns []Pattern) *Classifier {
	return &Classifier{patterns: patterns}
}

type scopeKey struct {
	category    domain.Category
	subcategory string
}

// Classify returns the best-matching topical scope for a query.
// Every pattern with at least one trigger phrase present contributes
// weight x matchCount to its scope; the scope with the highest
// accumulated weight wins, first-declared scope winning ties. The
// confidence tier is derived from the total weight across all matched
// patterns. A query matching nothing classifies as low confidence
// with no category, which callers must treat as "no filter".
func (c *Classifier) Classify(query string) domain.DetectedIntent {
	queryLower := strings.ToLower(query)

	scores := make(map[scopeKey]int)
	var order []scopeKey
	var matched []string
	total := 0

	for _, p := range c.patterns {
		matchCount := 0
		for _, phrase := range p.Phrases {
			if strings.Contains(queryLower, phrase) {
				matchCount++
				matched = append(matched, phrase)
			}
		}
		if matchCount == 0 {
			continue
		}

		key := scopeKey{category: p.Category, subcategory: p.Subcategory}
		if _, seen := scores[key]; !seen {
			order = append(order, key)
		}
		scores[key] += p.Weight * matchCount
		total += p.Weight * matchCount
	}

	intent := domain.DetectedIntent{
		Confidence:     confidenceFor(total),
		MatchedPhrases: matched,
		Weight:         total,
	}

	// Strict > keeps the first-seen scope on equal weight.
	best := 0
	for _, key := range order {
		if scores[key] > best {
			best = scores[key]
			intent.Category = key.category
			intent.Subcategory = key.subcategory
		}
	}

	return intent
}

func confidenceFor(weight int) domain.Confidence {
	switch {
	case weight >= highConfidenceWeight:
		return domain.ConfidenceHigh
	case weight >= mediumConfidenceWeight:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
