package domain

// Confidence is the tier assigned to a classified intent.
type Confidence string

// Confidence tiers. Total matched weight >= 15 is high, >= 7 medium,
// anything else low.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Category filters results to one category. Empty means no filter.
	Category Category

	// Subcategory filters results to one subcategory. Empty means no filter.
	Subcategory string

	// MaxResults is the maximum number of results to return.
	MaxResults int
}

// DetectedIntent is the topical scope inferred from a free-text query.
type DetectedIntent struct {
	// Category is the best-matching category. Only meaningful when
	// Confidence is not low.
	Category Category

	// Subcategory is the best-matching subcategory, if any.
	Subcategory string

	// Confidence is the tier derived from the total matched weight.
	Confidence Confidence

	// MatchedPhrases lists every trigger phrase found in the query,
	// across all patterns, in pattern declaration order.
	MatchedPhrases []string

	// Weight is the total accumulated weight across all matched patterns.
	Weight int
}

// QueryExpansion is the recall-oriented term set derived from a query.
type QueryExpansion struct {
	// ExpandedTerms is the deduplicated term list, capped at 20 entries.
	ExpandedTerms []string

	// DetectedConcepts lists the concept phrases found in the query.
	DetectedConcepts []string

	// SuggestedCategory is the category inferred by the classifier,
	// empty when classification confidence was low.
	SuggestedCategory Category

	// Confidence is the classifier's confidence tier.
	Confidence Confidence

	// Reasoning is a short human-readable justification.
	Reasoning string
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the manual the matching chunk belongs to.
	Document Document

	// Chunk is the passage that matched.
	Chunk Chunk

	// Score is the relevance score (density, priority and occurrence terms).
	Score float64

	// MatchDensity is the fraction of distinct query terms found in
	// the chunk, in [0,1].
	MatchDensity float64

	// Highlights contains snippets with matched terms.
	Highlights []string

	// DetectedIntent describes the automatically applied topic filter,
	// for caller-visible "searched within ..." messaging. Empty when
	// the caller supplied an explicit filter or none was inferred.
	DetectedIntent string
}

// BuildReport summarises one index build run.
type BuildReport struct {
	// RunID identifies the build run.
	RunID string

	// DocumentsIndexed is the number of files persisted successfully.
	DocumentsIndexed int

	// DocumentsFailed is the number of files skipped after an error.
	DocumentsFailed int

	// TotalChunks is the number of chunks written across all documents.
	TotalChunks int

	// Failures lists per-file error descriptions, one per failed file.
	Failures []string
}
