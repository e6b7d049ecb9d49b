package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/refman-tools/refman-cli/internal/chunker"
	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
	"github.com/refman-tools/refman-cli/internal/core/ports/driving"
	"github.com/refman-tools/refman-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// minChunkContent drops fragments too short to be useful search hits.
const minChunkContent = 50

// StoreFactory opens a fresh document store at an explicit database
// path. The index builder assembles the new index there before
// promoting it over the live store.
type StoreFactory func(dbPath string) (driven.DocumentStore, error)

// IndexService builds the document/chunk index from PDF manuals.
type IndexService struct {
	extractor driven.TextExtractor
	newStore  StoreFactory
	replacer  driven.StoreReplacer
	chunker   *chunker.Chunker
	rules     []ClassificationRule
	buildDir  string
}

// IndexOption configures an IndexService.
type IndexOption func(*IndexService)

// WithChunker overrides the default chunker.
func WithChunker(c *chunker.Chunker) IndexOption {
	return func(s *IndexService) { s.chunker = c }
}

// WithRules overrides the file name classification table.
func WithRules(rules []ClassificationRule) IndexOption {
	return func(s *IndexService) { s.rules = rules }
}

// WithBuildDir sets where the in-progress index database is assembled.
// Defaults to the system temp directory.
func WithBuildDir(dir string) IndexOption {
	return func(s *IndexService) { s.buildDir = dir }
}

// NewIndexService creates an index builder. The replacer is optional;
// when nil the built database stays at its build path.
func NewIndexService(
	extractor driven.TextExtractor, newStore StoreFactory,
	replacer driven.StoreReplacer, opts ...IndexOption,
) *IndexService {
	s := &IndexService{
		extractor: extractor,
		newStore:  newStore,
		replacer:  replacer,
		chunker:   chunker.New(),
		rules:     DefaultRules(),
		buildDir:  os.TempDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build indexes every PDF under the given root directories into a
// fresh store and promotes it over the live one. A failure on one
// file is recorded in the report and never aborts the run.
func (s *IndexService) Build(ctx context.Context, roots []string) (*domain.BuildReport, error) {
	logger.Section("Index Build")

	report := &domain.BuildReport{RunID: uuid.NewString()}
	logger.Debug("Build run %s", report.RunID)

	files, err := collectPDFs(roots)
	if err != nil {
		return nil, err
	}
	logger.Info("Found %d PDF file(s)", len(files))

	buildPath := filepath.Join(s.buildDir, "refman-build-"+report.RunID+".db")
	store, err := s.newStore(buildPath)
	if err != nil {
		return nil, fmt.Errorf("opening build store: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			store.Close()
			os.Remove(buildPath)
			return nil, err
		}

		if err := s.indexFile(ctx, store, path, report); err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			report.DocumentsFailed++
			report.Failures = append(report.Failures,
				fmt.Sprintf("%s: %v", filepath.Base(path), err))
		}
	}

	if err := store.Close(); err != nil {
		return nil, fmt.Errorf("closing build store: %w", err)
	}

	if s.replacer != nil {
		if err := s.replacer.Replace(buildPath); err != nil {
			os.Remove(buildPath)
			return nil, fmt.Errorf("promoting build: %w", err)
		}
	}

	logger.Info("Indexed %d document(s), %d chunk(s), %d failure(s)",
		report.DocumentsIndexed, report.TotalChunks, report.DocumentsFailed)
	return report, nil
}

// indexFile extracts, chunks and persists one manual.
func (s *IndexService) indexFile(
	ctx context.Context, store driven.DocumentStore, path string, report *domain.BuildReport,
) error {
	fileName := filepath.Base(path)
	logger.Debug("Indexing %s", fileName)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	extracted, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	cleaned := chunker.Clean(extracted.Text)
	if cleaned == "" {
		return domain.ErrNoText
	}

	passages := s.chunker.Chunk(cleaned)

	nameLower := strings.ToLower(fileName)
	rule := classify(s.rules, nameLower)

	doc := &domain.Document{
		FileName:    fileName,
		FilePath:    path,
		Category:    rule.Category,
		Subcategory: rule.Subcategory,
		DocType:     rule.DocType,
		Title:       extractTitle(fileName),
		Keywords:    rule.Keywords,
		APIVersion:  extractAPIVersion(nameLower),
		PageCount:   extracted.PageCount,
		SizeBytes:   info.Size(),
		Priority:    rule.Priority,
	}
	if err := store.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	var chunks []domain.Chunk
	for _, p := range passages {
		if len(p.Content) <= minChunkContent {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID:   doc.ID,
			ChunkIndex:   p.Index,
			Content:      p.Content,
			ContentLower: strings.ToLower(p.Content),
			SectionTitle: p.SectionTitle,
		})
	}
	if len(chunks) > 0 {
		if err := store.SaveChunks(ctx, chunks); err != nil {
			return fmt.Errorf("save chunks: %w", err)
		}
	}

	report.DocumentsIndexed++
	report.TotalChunks += len(chunks)
	logger.Debug("Indexed %s: %d chunk(s), category %s/%s",
		fileName, len(chunks), doc.Category, doc.Subcategory)
	return nil
}

// collectPDFs walks the roots and returns every PDF path, sorted for
// a deterministic build order.
func collectPDFs(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: no root directories", domain.ErrInvalidInput)
	}

	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".pdf") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("root %s: %w", root, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// acronyms are title words kept fully uppercase.
var acronyms = map[string]string{
	"api": "API", "apis": "APIs", "soql": "SOQL", "sosl": "SOSL",
	"lwc": "LWC", "rest": "REST", "soap": "SOAP", "sso": "SSO",
	"oauth": "OAuth", "ui": "UI", "sdk": "SDK", "wsdl": "WSDL",
}

// extractTitle derives a display title from a file name:
// "apex_developer_guide_v58.pdf" becomes "Apex Developer Guide v58".
func extractTitle(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		if acr, ok := acronyms[lower]; ok {
			words[i] = acr
			continue
		}
		if apiVersionPattern.MatchString("_" + lower + "_") {
			words[i] = lower
			continue
		}
		first, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(words, " ")
}
