package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	expandContext string
	expandJSON    bool
)

var expandCmd = &cobra.Command{
	Use:   "expand [query]",
	Short: "Expand a query into related search terms",
	Long: `Expands a query into a recall-oriented term set using the built-in
concept tables: matched concept phrases, their synonyms, the query's
own words and the detected topic's vocabulary.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().StringVar(&expandContext, "context", "",
		"free-text context that refines the expansion")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	expansion := searchService.ExpandQuery(args[0], expandContext)

	if expandJSON {
		data, err := json.MarshalIndent(expansion, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal expansion: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Terms: %s\n", strings.Join(expansion.ExpandedTerms, ", "))
	if len(expansion.DetectedConcepts) > 0 {
		cmd.Printf("Concepts: %s\n", strings.Join(expansion.DetectedConcepts, ", "))
	}
	if expansion.SuggestedCategory != "" {
		cmd.Printf("Suggested category: %s\n", expansion.SuggestedCategory)
	}
	cmd.Printf("Confidence: %s\n", expansion.Confidence)
	cmd.Printf("Reasoning: %s\n", expansion.Reasoning)
	return nil
}
