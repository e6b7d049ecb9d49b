package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/refman-tools/refman-cli/internal/adapters/driven/storage/memory"
	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

// fakeExtractor serves canned text per file name and records calls.
type fakeExtractor struct {
	texts map[string]string // file name -> text
	fail  map[string]error  // file name -> forced error
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	name := filepath.Base(path)
	if err, ok := f.fail[name]; ok {
		return nil, err
	}
	text, ok := f.texts[name]
	if !ok {
		return nil, domain.ErrNoText
	}
	return &driven.ExtractResult{Text: text, PageCount: 10}, nil
}

// recordingReplacer captures the build path handed to Replace.
type recordingReplacer struct {
	buildPath string
}

func (r *recordingReplacer) Replace(buildPath string) error {
	r.buildPath = buildPath
	return nil
}

// memoryFactory hands out one shared in-memory store so tests can
// inspect what the build wrote.
func memoryFactory(store *storagemem.DocumentStore) StoreFactory {
	return func(string) (driven.DocumentStore, error) {
		return store, nil
	}
}

func writePDFs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0600))
	}
}

func manualText() string {
	para := strings.Repeat("Batch Apex processes records in chunks of up to two hundred. ", 4)
	return "INTRODUCTION TO ASYNCHRONOUS PROCESSING\n\n" + para + "\n\n" + para
}

func TestIndexService_Build(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "apex_developer_guide_v58.pdf", "rest_api_reference.pdf", "notes.txt")

	store := storagemem.NewDocumentStore()
	extractor := &fakeExtractor{texts: map[string]string{
		"apex_developer_guide_v58.pdf": manualText(),
		"rest_api_reference.pdf":       manualText(),
	}}
	replacer := &recordingReplacer{}

	svc := NewIndexService(extractor, memoryFactory(store), replacer, WithBuildDir(t.TempDir()))
	report, err := svc.Build(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.DocumentsIndexed, "non-PDF files are ignored")
	assert.Zero(t, report.DocumentsFailed)
	assert.Greater(t, report.TotalChunks, 0)
	assert.Contains(t, replacer.buildPath, report.RunID)

	ctx := context.Background()
	doc, err := store.GetDocumentByFileName(ctx, "apex_developer_guide_v58.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDevelopment, doc.Category)
	assert.Equal(t, "apex", doc.Subcategory)
	assert.Equal(t, domain.DocTypeReference, doc.DocType)
	assert.Equal(t, "Apex Developer Guide v58", doc.Title)
	assert.Equal(t, "v58", doc.APIVersion)
	assert.Equal(t, 9, doc.Priority)
	assert.Equal(t, 10, doc.PageCount)

	rest, err := store.GetDocumentByFileName(ctx, "rest_api_reference.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAPI, rest.Category)
	assert.Equal(t, "rest", rest.Subcategory)
}

func TestIndexService_Build_FailedFileIsReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "good.pdf", "corrupt.pdf")

	store := storagemem.NewDocumentStore()
	extractor := &fakeExtractor{
		texts: map[string]string{"good.pdf": manualText()},
		fail:  map[string]error{"corrupt.pdf": errors.New("damaged xref table")},
	}

	svc := NewIndexService(extractor, memoryFactory(store), nil, WithBuildDir(t.TempDir()))
	report, err := svc.Build(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, 1, report.DocumentsIndexed)
	assert.Equal(t, 1, report.DocumentsFailed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0], "corrupt.pdf")
	assert.Contains(t, report.Failures[0], "damaged xref table")
}

func TestIndexService_Build_EmptyTextIsFailure(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "scanned.pdf")

	store := storagemem.NewDocumentStore()
	extractor := &fakeExtractor{texts: map[string]string{"scanned.pdf": "   \n\n  "}}

	svc := NewIndexService(extractor, memoryFactory(store), nil, WithBuildDir(t.TempDir()))
	report, err := svc.Build(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Zero(t, report.DocumentsIndexed)
	assert.Equal(t, 1, report.DocumentsFailed)
}

func TestIndexService_Build_ShortChunksDropped(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "tiny.pdf")

	store := storagemem.NewDocumentStore()
	extractor := &fakeExtractor{texts: map[string]string{
		"tiny.pdf": manualText(),
	}}

	svc := NewIndexService(extractor, memoryFactory(store), nil, WithBuildDir(t.TempDir()))
	report, err := svc.Build(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, 1, report.DocumentsIndexed)

	hits, err := store.SearchChunks(context.Background(),
		[]string{"batch apex"}, driven.ChunkFilter{}, 0)
	require.NoError(t, err)
	for _, hit := range hits {
		assert.Greater(t, len(hit.Chunk.Content), minChunkContent)
	}
}

func TestIndexService_Build_NoRoots(t *testing.T) {
	svc := NewIndexService(&fakeExtractor{}, memoryFactory(storagemem.NewDocumentStore()), nil)

	_, err := svc.Build(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexService_Build_MissingRoot(t *testing.T) {
	svc := NewIndexService(&fakeExtractor{}, memoryFactory(storagemem.NewDocumentStore()), nil,
		WithBuildDir(t.TempDir()))

	_, err := svc.Build(context.Background(), []string{"/does/not/exist"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexService_Build_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "apex.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewIndexService(&fakeExtractor{}, memoryFactory(storagemem.NewDocumentStore()), nil,
		WithBuildDir(t.TempDir()))
	_, err := svc.Build(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}
