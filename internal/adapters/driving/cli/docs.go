package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List the indexed manuals",
	Long:  `Lists every indexed manual with its category and priority.`,
	RunE:  runDocs,
}

var docsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runDocsStats,
}

func init() {
	docsCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	docsCmd.AddCommand(docsStatsCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if docsService == nil {
		return errors.New("docs service not configured")
	}

	docs, err := docsService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents failed: %w", err)
	}

	if docsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed. Run 'refman index <dir>' first.")
		return nil
	}

	for i := range docs {
		scope := string(docs[i].Category)
		if docs[i].Subcategory != "" {
			scope += "/" + docs[i].Subcategory
		}
		cmd.Printf("%-50s %-26s p%d %s\n",
			docs[i].FileName, scope, docs[i].Priority, docs[i].DocType)
	}
	return nil
}

func runDocsStats(cmd *cobra.Command, _ []string) error {
	if docsService == nil {
		return errors.New("docs service not configured")
	}

	stats, err := docsService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading stats failed: %w", err)
	}

	cmd.Printf("Documents: %d\n", stats.Documents)
	cmd.Printf("Chunks:    %d\n", stats.Chunks)
	return nil
}
