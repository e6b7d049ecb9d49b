package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

func TestDocsCmd_Use(t *testing.T) {
	assert.Equal(t, "docs", docsCmd.Use)
}

func TestDocsCmd_HasStatsSubcommand(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range docsCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "stats")
}

func TestDocsCmd_ListsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "apex_developer_guide_v58.pdf")
	assert.Contains(t, buf.String(), "development/apex")
	assert.Contains(t, buf.String(), "p9")
}

func TestDocsCmd_EmptyIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docsService.(*mockDocsService).documents = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents indexed.")
}

func TestDocsCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		docsJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"FileName\"")
	assert.Contains(t, buf.String(), "apex_developer_guide_v58.pdf")
}

func TestDocsStatsCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"docs", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Documents: 360")
	assert.Contains(t, buf.String(), "Chunks:    48210")
}

func TestDocsStatsCmd_PropagatesError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docsService.(*mockDocsService).err = domain.ErrStoreUnavailable

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"docs", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestRunDocs_ErrorsWithoutService(t *testing.T) {
	oldDocs := docsService
	docsService = nil
	defer func() { docsService = oldDocs }()

	err := runDocs(docsCmd, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
