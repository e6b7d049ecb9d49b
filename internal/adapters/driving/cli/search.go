package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

var (
	searchMaxResults  int
	searchCategory    string
	searchSubcategory string
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed manuals",
	Long: `Searches the indexed manuals for a free-text query.

Without an explicit --category or --subcategory, the query is
classified by topic and confidently classified queries are scoped to
the matching manuals automatically, widening again if the scope turns
out too narrow.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchMaxResults, "max-results", "n", 10,
		"maximum number of results")
	searchCmd.Flags().StringVar(&searchCategory, "category", "",
		"restrict results to one category")
	searchCmd.Flags().StringVar(&searchSubcategory, "subcategory", "",
		"restrict results to one subcategory")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	if searchCategory != "" && !domain.Category(searchCategory).IsValid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidCategory, searchCategory)
	}

	opts := domain.SearchOptions{
		Category:    domain.Category(searchCategory),
		Subcategory: searchSubcategory,
		MaxResults:  searchMaxResults,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if intent := results[0].DetectedIntent; intent != "" {
		cmd.Printf("Searched within %s\n", intent)
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document

		scope := string(doc.Category)
		if doc.Subcategory != "" {
			scope += "/" + doc.Subcategory
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, doc.Title, results[i].Score)
		cmd.Printf("      %s - %s\n", scope, doc.FileName)
		if section := results[i].Chunk.SectionTitle; section != "" {
			cmd.Printf("      Section: %s\n", section)
		}
		if len(results[i].Highlights) > 0 {
			cmd.Printf("      %s\n", results[i].Highlights[0])
		}
		cmd.Println()
	}

	return nil
}
