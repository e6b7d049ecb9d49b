package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/refman-tools/refman-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

// dbFileName is the index database file inside the data directory.
const dbFileName = "index.db"

// dsnOptions enables WAL mode and a busy timeout for concurrent readers.
const dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.StoreReplacer = (*Store)(nil)
)

// Store is a SQLite-backed document store. It holds the document
// metadata and chunk tables and answers the substring candidate
// queries the retrieval engine issues.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store inside the given data directory.
// If dataDir is empty, defaults to ~/.refman/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".refman", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// NewStoreAt creates a SQLite store at an explicit database file path.
// Used by the index builder to assemble a fresh store before promoting
// it over the live one.
func NewStoreAt(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating build directory: %w", err)
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// conn returns the current database handle. The handle can be swapped
// by Replace, so callers must not hold it across calls.
func (s *Store) conn() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Replace atomically installs the store built at buildPath over the
// live database file and reopens the connection.
func (s *Store) Replace(buildPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing live database: %w", err)
	}

	// Stale WAL sidecars of the old database must not survive the swap.
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(s.path + suffix)
	}

	if err := os.Rename(buildPath, s.path); err != nil {
		return fmt.Errorf("installing rebuilt database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(buildPath + suffix); err == nil {
			if err := os.Rename(buildPath+suffix, s.path+suffix); err != nil {
				return fmt.Errorf("installing rebuilt database sidecar: %w", err)
			}
		}
	}

	db, err := openDatabase(s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveDocument stores a new document and assigns its ID.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if !doc.Category.IsValid() {
		return domain.ErrInvalidCategory
	}
	if doc.Priority < 1 || doc.Priority > 10 {
		return domain.ErrInvalidPriority
	}

	keywordsJSON, err := json.Marshal(doc.Keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn().ExecContext(ctx, `
		INSERT INTO documents
			(file_name, file_path, category, subcategory, doc_type, title,
			 description, keywords, api_version, page_count, size_bytes,
			 priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.FileName, doc.FilePath, string(doc.Category), nullString(doc.Subcategory),
		string(doc.DocType), doc.Title, nullString(doc.Description), string(keywordsJSON),
		nullString(doc.APIVersion), doc.PageCount, doc.SizeBytes, doc.Priority, doc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document %q: %w", doc.FileName, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return nil
}

// SaveChunks stores chunks for a document in one transaction.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks
			(document_id, chunk_index, content, content_lower, section_title, page_number)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		chunk := &chunks[i]
		if chunk.ContentLower == "" {
			chunk.ContentLower = strings.ToLower(chunk.Content)
		}

		res, err := stmt.ExecContext(ctx, chunk.DocumentID, chunk.ChunkIndex,
			chunk.Content, chunk.ContentLower, nullString(chunk.SectionTitle),
			nullInt(chunk.PageNumber))
		if err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.ChunkIndex, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading chunk id: %w", err)
		}
		chunk.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const documentColumns = `
	id, file_name, file_path, category, subcategory, doc_type, title,
	description, keywords, api_version, page_count, size_bytes, priority, created_at`

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.conn().QueryRowContext(ctx,
		"SELECT"+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// GetDocumentByFileName retrieves a document by its unique file name.
func (s *Store) GetDocumentByFileName(ctx context.Context, fileName string) (*domain.Document, error) {
	row := s.conn().QueryRowContext(ctx,
		"SELECT"+documentColumns+" FROM documents WHERE file_name = ?", fileName)
	return scanDocument(row)
}

// ListDocuments returns all documents ordered by priority descending.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.conn().QueryContext(ctx,
		"SELECT"+documentColumns+" FROM documents ORDER BY priority DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes a document; chunks cascade via foreign key.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.conn().ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchChunks returns chunks whose lowercase content contains any of
// the given terms, scoped by filter. Candidates are ordered by document
// priority descending before the limit is applied.
func (s *Store) SearchChunks(
	ctx context.Context, terms []string, filter driven.ChunkFilter, limit int,
) ([]driven.ChunkHit, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	var (
		conds []string
		args  []any
	)
	for _, term := range terms {
		conds = append(conds, `c.content_lower LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
	}

	query := `
		SELECT
			c.id, c.document_id, c.chunk_index, c.content, c.content_lower,
			c.section_title, c.page_number,
			d.id, d.file_name, d.file_path, d.category, d.subcategory, d.doc_type,
			d.title, d.description, d.keywords, d.api_version, d.page_count,
			d.size_bytes, d.priority, d.created_at
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE (` + strings.Join(conds, " OR ") + `)`

	if filter.Category != "" {
		query += " AND d.category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.Subcategory != "" {
		query += " AND d.subcategory = ?"
		args = append(args, filter.Subcategory)
	}

	query += " ORDER BY d.priority DESC, d.id, c.chunk_index"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.ChunkHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			hit          driven.ChunkHit
			sectionTitle sql.NullString
			pageNumber   sql.NullInt64
			scratch      docScan
		)
		targets := append([]any{
			&hit.Chunk.ID, &hit.Chunk.DocumentID, &hit.Chunk.ChunkIndex,
			&hit.Chunk.Content, &hit.Chunk.ContentLower, &sectionTitle, &pageNumber,
		}, scratch.targets(&hit.Document)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning chunk hit: %w", err)
		}
		hit.Chunk.SectionTitle = sectionTitle.String
		hit.Chunk.PageNumber = int(pageNumber.Int64)
		if err := scratch.finish(&hit.Document); err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk hits: %w", err)
	}

	return hits, nil
}

// Stats returns document and chunk counts.
func (s *Store) Stats(ctx context.Context) (driven.StoreStats, error) {
	var stats driven.StoreStats
	if err := s.conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents").Scan(&stats.Documents); err != nil {
		return stats, fmt.Errorf("counting documents: %w", err)
	}
	if err := s.conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks").Scan(&stats.Chunks); err != nil {
		return stats, fmt.Errorf("counting chunks: %w", err)
	}
	return stats, nil
}

// ==================== Helper Functions ====================

// docScan holds scan targets for the nullable and JSON-encoded
// document columns. One per scanned row.
type docScan struct {
	subcategory  sql.NullString
	description  sql.NullString
	apiVersion   sql.NullString
	keywordsJSON string
}

// targets returns the scan destinations for documentColumns, mixing
// direct struct fields with the scratch fields.
func (sc *docScan) targets(doc *domain.Document) []any {
	return []any{
		&doc.ID, &doc.FileName, &doc.FilePath, &doc.Category, &sc.subcategory,
		&doc.DocType, &doc.Title, &sc.description, &sc.keywordsJSON,
		&sc.apiVersion, &doc.PageCount, &doc.SizeBytes, &doc.Priority, &doc.CreatedAt,
	}
}

// finish copies the scratch fields into the document.
func (sc *docScan) finish(doc *domain.Document) error {
	doc.Subcategory = sc.subcategory.String
	doc.Description = sc.description.String
	doc.APIVersion = sc.apiVersion.String
	if sc.keywordsJSON != "" && sc.keywordsJSON != "null" {
		if err := json.Unmarshal([]byte(sc.keywordsJSON), &doc.Keywords); err != nil {
			return fmt.Errorf("unmarshaling keywords: %w", err)
		}
	}
	return nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var scratch docScan
	if err := row.Scan(scratch.targets(&doc)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if err := scratch.finish(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var scratch docScan
	if err := rows.Scan(scratch.targets(&doc)...); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if err := scratch.finish(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// escapeLike escapes LIKE metacharacters so terms match literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
