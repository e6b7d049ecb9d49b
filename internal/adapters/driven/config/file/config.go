// Package file loads and persists the refman configuration as a TOML
// file in the user's config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable settings of the refman CLI. Every field has
// a sensible default; the config file only needs to name what changes.
type Config struct {
	// DataDir is where the index database lives.
	// Defaults to ~/.refman/data.
	DataDir string `toml:"data_dir"`

	Chunking ChunkingConfig `toml:"chunking"`
	Cache    CacheConfig    `toml:"cache"`
	Search   SearchConfig   `toml:"search"`
}

// ChunkingConfig tunes passage splitting during indexing.
type ChunkingConfig struct {
	// MaxChunkSize is the target passage size in characters.
	MaxChunkSize int `toml:"max_chunk_size"`

	// OverlapSize is the context overlap carried between passages.
	OverlapSize int `toml:"overlap_size"`
}

// CacheConfig tunes the in-memory search result cache.
type CacheConfig struct {
	// TTLSeconds is how long cached results stay valid.
	TTLSeconds int `toml:"ttl_seconds"`

	// Capacity is the maximum number of cached queries.
	Capacity int `toml:"capacity"`
}

// SearchConfig tunes candidate sampling and result limits.
type SearchConfig struct {
	// MaxResults is the default number of results per search.
	MaxResults int `toml:"max_results"`

	// FilteredCandidateLimit caps candidates for filtered searches.
	FilteredCandidateLimit int `toml:"filtered_candidate_limit"`

	// UnfilteredCandidateLimit caps candidates for unfiltered searches.
	UnfilteredCandidateLimit int `toml:"unfiltered_candidate_limit"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Chunking: ChunkingConfig{
			MaxChunkSize: 1500,
			OverlapSize:  180,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			Capacity:   100,
		},
		Search: SearchConfig{
			MaxResults:               10,
			FilteredCandidateLimit:   150,
			UnfilteredCandidateLimit: 500,
		},
	}
}

// Load reads the config file from configDir, falling back to defaults
// for a missing file or missing fields. If configDir is empty,
// defaults to ~/.refman.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".refman")
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to configDir/config.toml.
func Save(configDir string, cfg Config) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

// applyDefaults fills zero fields left out of the file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Chunking.MaxChunkSize <= 0 {
		c.Chunking.MaxChunkSize = def.Chunking.MaxChunkSize
	}
	if c.Chunking.OverlapSize <= 0 {
		c.Chunking.OverlapSize = def.Chunking.OverlapSize
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = def.Cache.TTLSeconds
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = def.Cache.Capacity
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = def.Search.MaxResults
	}
	if c.Search.FilteredCandidateLimit <= 0 {
		c.Search.FilteredCandidateLimit = def.Search.FilteredCandidateLimit
	}
	if c.Search.UnfilteredCandidateLimit <= 0 {
		c.Search.UnfilteredCandidateLimit = def.Search.UnfilteredCandidateLimit
	}
}
