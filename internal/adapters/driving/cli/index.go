package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir...]",
	Short: "Build the search index from PDF manuals",
	Long: `Indexes every PDF under the given directories into a fresh search
index and atomically replaces the live one. Files that cannot be
parsed are skipped and reported; they never abort the build.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	cmd.Printf("Indexing %d director%s...\n", len(args), plural(len(args), "y", "ies"))

	report, err := indexService.Build(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	cmd.Printf("Indexed %d document(s), %d chunk(s).\n",
		report.DocumentsIndexed, report.TotalChunks)

	if report.DocumentsFailed > 0 {
		cmd.Printf("Skipped %d file(s):\n", report.DocumentsFailed)
		for _, failure := range report.Failures {
			cmd.Printf("  - %s\n", failure)
		}
	}

	return nil
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
