// Package cli implements the refman command line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cachemem "github.com/refman-tools/refman-cli/internal/adapters/driven/cache/memory"
	configfile "github.com/refman-tools/refman-cli/internal/adapters/driven/config/file"
	"github.com/refman-tools/refman-cli/internal/adapters/driven/extractor/pdf"
	"github.com/refman-tools/refman-cli/internal/adapters/driven/storage/sqlite"
	"github.com/refman-tools/refman-cli/internal/chunker"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
	"github.com/refman-tools/refman-cli/internal/core/ports/driving"
	"github.com/refman-tools/refman-cli/internal/core/services"
	"github.com/refman-tools/refman-cli/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagDataDir   string
	flagConfigDir string
)

// Wired services. Tests replace these with mocks; initServices leaves
// existing values alone.
var (
	searchService driving.SearchService
	indexService  driving.IndexService
	docsService   driving.DocsService
)

// Teardown hooks collected during wiring.
var closers []func() error

var rootCmd = &cobra.Command{
	Use:   "refman",
	Short: "Search local developer reference manuals",
	Long: `refman indexes a directory tree of PDF developer manuals into a
local SQLite database and answers free-text queries against it.
Queries are classified by topic so results come from the right
manuals first, and an MCP server exposes the same search to AI
assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"directory holding the index database (default ~/.refman/data)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"directory holding config.toml (default ~/.refman)")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer shutdown()
	return rootCmd.Execute()
}

// initServices wires the real adapters behind the service variables.
// Already-populated services (tests inject mocks) are kept.
func initServices() error {
	if searchService != nil && indexService != nil && docsService != nil {
		return nil
	}

	cfg, err := configfile.Load(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	closers = append(closers, store.Close)

	cache := cachemem.NewResultCache(
		cachemem.WithTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		cachemem.WithCapacity(cfg.Cache.Capacity),
	)

	// Another process may rebuild the index underneath us.
	stop, err := store.WatchReplacements(cache.Purge)
	if err != nil {
		logger.Warn("Index watcher unavailable: %v", err)
	} else {
		closers = append(closers, stop)
	}

	if searchService == nil {
		searchService = services.NewSearchService(store, cache,
			services.WithCandidateLimits(
				cfg.Search.FilteredCandidateLimit,
				cfg.Search.UnfilteredCandidateLimit,
			))
	}

	if indexService == nil {
		factory := func(dbPath string) (driven.DocumentStore, error) {
			return sqlite.NewStoreAt(dbPath)
		}
		indexService = services.NewIndexService(pdf.NewExtractor(), factory, store,
			services.WithChunker(chunker.New(
				chunker.WithMaxChunkSize(cfg.Chunking.MaxChunkSize),
				chunker.WithOverlapSize(cfg.Chunking.OverlapSize),
			)))
	}

	if docsService == nil {
		docsService = services.NewDocsService(store)
	}

	return nil
}

// shutdown releases everything initServices opened.
func shutdown() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}
	closers = nil
}
