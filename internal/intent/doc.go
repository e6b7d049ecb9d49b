// Package intent maps free-text queries to a topical category and
// subcategory using a static weighted keyword pattern table, and
// derives recall-oriented query expansions from the same signals.
// The pattern table is loaded once and never mutated, so the
// classifier is safe for concurrent use.
package intent
