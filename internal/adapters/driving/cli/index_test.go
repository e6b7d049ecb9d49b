package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index [dir...]", indexCmd.Use)
}

func TestIndexCmd_RequiresAtLeastOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIndexCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "/manuals", "/extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexing 2 directories...")
	assert.Contains(t, buf.String(), "Indexed 2 document(s), 40 chunk(s).")
	assert.Equal(t, []string{"/manuals", "/extra"},
		indexService.(*mockIndexService).lastRoots)
}

func TestIndexCmd_ReportsFailures(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := indexService.(*mockIndexService)
	mock.report.DocumentsFailed = 1
	mock.report.Failures = []string{"broken.pdf: extracting text: malformed xref"}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "/manuals"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexing 1 directory...")
	assert.Contains(t, buf.String(), "Skipped 1 file(s):")
	assert.Contains(t, buf.String(), "broken.pdf: extracting text: malformed xref")
}

func TestIndexCmd_PropagatesBuildError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	indexService.(*mockIndexService).err = errors.New("no PDF files found")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "/empty"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index build failed")
	assert.Contains(t, err.Error(), "no PDF files found")
}

func TestRunIndex_ErrorsWithoutService(t *testing.T) {
	oldIndex := indexService
	indexService = nil
	defer func() { indexService = oldIndex }()

	err := runIndex(indexCmd, []string{"/manuals"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
