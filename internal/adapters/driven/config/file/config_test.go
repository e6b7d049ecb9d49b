package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte("[chunking]\nmax_chunk_size = 800\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), content, 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, 180, cfg.Chunking.OverlapSize, "unset fields keep defaults")
	assert.Equal(t, 500, cfg.Search.UnfilteredCandidateLimit)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.DataDir = "/srv/refman"
	cfg.Search.MaxResults = 25
	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/refman", loaded.DataDir)
	assert.Equal(t, 25, loaded.Search.MaxResults)
}
