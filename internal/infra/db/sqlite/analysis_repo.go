package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/infra/db"
)

// AnalysisRepository keeps the analysis history in a local SQLite file.
type AnalysisRepository struct {
	db *sql.DB
}

// Open creates the database file (and its directory) and the schema.
func Open(ctx context.Context, dbPath string) (*AnalysisRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &AnalysisRepository{db: db}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return r, nil
}

func (r *AnalysisRepository) DB() *sql.DB { return r.db }

func (r *AnalysisRepository) Close() error { return r.db.Close() }

func (r *AnalysisRepository) initSchema(ctx context.Context) error {
	const q = `
	CREATE TABLE IF NOT EXISTS document_analyses (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		document_url TEXT NOT NULL,
		status TEXT NOT NULL,
		error_kind TEXT NOT NULL,
		risk_score INTEGER NOT NULL,
		pii_count INTEGER NOT NULL,
		clause_count INTEGER NOT NULL,
		language TEXT NOT NULL,
		issues_json TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_document_analyses_created ON document_analyses(created_at);
	`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
	INSERT INTO document_analyses
	(id, session_id, file_name, document_url, status, error_kind,
	 risk_score, pii_count, clause_count, language, issues_json, summary, created_at)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(id) DO UPDATE SET
	 status = excluded.status,
	 error_kind = excluded.error_kind,
	 risk_score = excluded.risk_score,
	 pii_count = excluded.pii_count,
	 clause_count = excluded.clause_count,
	 language = excluded.language,
	 issues_json = excluded.issues_json,
	 summary = excluded.summary
	`
	row, err := db.EncodeRecord(rec, time.Now())
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, row.Args(row.CreatedAt.UnixNano())...)
	if err != nil {
		return fmt.Errorf("save analysis %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `
	SELECT id, session_id, file_name, document_url, status, error_kind,
	       risk_score, pii_count, clause_count, language, issues_json, summary, created_at
	FROM document_analyses`

func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (r *AnalysisRepository) Since(ctx context.Context, since time.Time) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE created_at >= ? ORDER BY created_at ASC`, since.UnixNano())
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*domain.Record, error) {
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var (
			row     db.Row
			created int64
		)
		if err := rows.Scan(append(row.Dest(), &created)...); err != nil {
			return nil, err
		}
		row.CreatedAt = time.Unix(0, created).UTC()
		rec, err := row.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
