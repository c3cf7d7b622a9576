// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "corpus.db"
)

// Store manages the article search index backing the corpus commands.
// Per prd005-corpus R4.1-R4.4.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the index database at dataDir/index/corpus.db.
// It creates the schema if it does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			subtitle TEXT,
			category TEXT,
			category_slug TEXT,
			authors TEXT,
			paper_id TEXT NOT NULL,
			paper_url TEXT,
			read_time TEXT,
			publish_date TEXT,
			concept TEXT,
			concept_title TEXT,
			concept_body TEXT,
			summary TEXT,
			excerpt TEXT,
			content TEXT,
			fingerprint TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_paper_id ON articles(paper_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category_slug ON articles(category_slug)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(
				title, summary, excerpt, concept_body,
				content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, summary, excerpt, concept_body)
				VALUES (new.rowid, new.title, new.summary, new.excerpt, new.concept_body);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary, excerpt, concept_body)
				VALUES('delete', old.rowid, old.title, old.summary, old.excerpt, old.concept_body);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary, excerpt, concept_body)
				VALUES('delete', old.rowid, old.title, old.summary, old.excerpt, old.concept_body);
				INSERT INTO articles_fts(rowid, title, summary, excerpt, concept_body)
				VALUES (new.rowid, new.title, new.summary, new.excerpt, new.concept_body);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IndexSummary holds counts from an index run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
}

// Total returns the number of entries processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped
}

// Index upserts corpus entries into the search index, keyed by slug.
// Entries whose stored fingerprint matches are skipped, so reindexing an
// unchanged corpus is cheap.
func (s *Store) Index(ctx context.Context, entries []types.CorpusEntry, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fp, err := fingerprint(entry)
		if err != nil {
			return summary, fmt.Errorf("fingerprinting %s: %w", entry.ID, err)
		}

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT fingerprint FROM articles WHERE slug = ?`, entry.ID,
		).Scan(&stored)

		if err == nil && stored == fp {
			fmt.Fprintf(w, "skipped %s\n", entry.ID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.upsertEntry(ctx, entry, fp); err != nil {
			return summary, fmt.Errorf("indexing %s: %w", entry.ID, err)
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", entry.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", entry.ID)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped)

	return summary, nil
}

func (s *Store) upsertEntry(ctx context.Context, entry types.CorpusEntry, fp string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	authorsJSON, _ := json.Marshal(entry.Authors)
	contentJSON, _ := json.Marshal(entry.Content)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO articles (slug, title, subtitle, category, category_slug, authors,
			paper_id, paper_url, read_time, publish_date,
			concept, concept_title, concept_body, summary, excerpt, content, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			title=excluded.title, subtitle=excluded.subtitle,
			category=excluded.category, category_slug=excluded.category_slug,
			authors=excluded.authors, paper_id=excluded.paper_id,
			paper_url=excluded.paper_url, read_time=excluded.read_time,
			publish_date=excluded.publish_date, concept=excluded.concept,
			concept_title=excluded.concept_title, concept_body=excluded.concept_body,
			summary=excluded.summary, excerpt=excluded.excerpt,
			content=excluded.content, fingerprint=excluded.fingerprint`,
		entry.ID, entry.Title, entry.Subtitle, entry.Category, entry.CategorySlug,
		string(authorsJSON), entry.PaperID, entry.PaperURL, entry.ReadTime,
		entry.PublishDate, entry.ConceptExplained,
		entry.ConceptExplanation.Title, entry.ConceptExplanation.Content,
		entry.Summary, entry.Excerpt, string(contentJSON), fp,
	)
	if err != nil {
		return fmt.Errorf("upserting article: %w", err)
	}

	return tx.Commit()
}

func fingerprint(entry types.CorpusEntry) (string, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Category filters by category slug.
	Category string

	// PaperID filters by source paper.
	PaperID string

	// MaxResults limits result count. Zero uses store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.PaperID == ""
}

// Retrieve queries the index with optional full-text search and
// structured filters. Full-text queries rank by FTS5 relevance;
// structured-only queries sort by publish date descending.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.CorpusEntry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.slug, a.title, a.subtitle, a.category, a.category_slug, a.authors,
				a.paper_id, a.paper_url, a.read_time, a.publish_date,
				a.concept, a.concept_title, a.concept_body, a.summary, a.excerpt, a.content
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.slug, a.title, a.subtitle, a.category, a.category_slug, a.authors,
				a.paper_id, a.paper_url, a.read_time, a.publish_date,
				a.concept, a.concept_title, a.concept_body, a.summary, a.excerpt, a.content
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND a.category_slug = ?`)
		args = append(args, opts.Category)
	}

	if opts.PaperID != "" {
		qb.WriteString(` AND a.paper_id = ?`)
		args = append(args, opts.PaperID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.publish_date DESC, a.slug`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []types.CorpusEntry
	for rows.Next() {
		var (
			e           types.CorpusEntry
			authorsJSON sql.NullString
			contentJSON sql.NullString
		)

		if err := rows.Scan(
			&e.ID, &e.Title, &e.Subtitle, &e.Category, &e.CategorySlug, &authorsJSON,
			&e.PaperID, &e.PaperURL, &e.ReadTime, &e.PublishDate,
			&e.ConceptExplained, &e.ConceptExplanation.Title, &e.ConceptExplanation.Content,
			&e.Summary, &e.Excerpt, &contentJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &e.Authors)
		}
		if contentJSON.Valid {
			json.Unmarshal([]byte(contentJSON.String), &e.Content)
		}

		results = append(results, e)
	}

	return results, rows.Err()
}

const exportLimit = 100000

// ExportYAML writes the indexed corpus to dataDir/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the indexed corpus to dataDir/index/export.json.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]types.CorpusEntry, error) {
	opts.MaxResults = exportLimit
	entries, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return entries, nil
}
