package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/infra/db"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Migrate creates the history table when missing.
func (r *AnalysisRepository) Migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS document_analyses (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  session_id VARCHAR(64) NOT NULL,
  file_name VARCHAR(255) NOT NULL,
  document_url TEXT NOT NULL,
  status VARCHAR(16) NOT NULL,
  error_kind VARCHAR(32) NOT NULL,
  risk_score INT NOT NULL,
  pii_count INT NOT NULL,
  clause_count INT NOT NULL,
  language VARCHAR(64) NOT NULL,
  issues_json TEXT NOT NULL,
  summary TEXT NOT NULL,
  created_at DATETIME(6) NOT NULL,
  INDEX idx_document_analyses_created (created_at)
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Save insert/update analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO document_analyses
(id, session_id, file_name, document_url, status, error_kind,
 risk_score, pii_count, clause_count, language, issues_json, summary, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status), error_kind=VALUES(error_kind),
 risk_score=VALUES(risk_score), pii_count=VALUES(pii_count), clause_count=VALUES(clause_count),
 language=VALUES(language), issues_json=VALUES(issues_json), summary=VALUES(summary);
`
	row, err := db.EncodeRecord(rec, time.Now())
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, row.Args(row.CreatedAt)...)
	return err
}

const selectColumns = `
SELECT id, session_id, file_name, document_url, status, error_kind,
       risk_score, pii_count, clause_count, language, issues_json, summary, created_at
FROM document_analyses`

// Latest records, newest first
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

// Since returns records created at or after since, oldest first
func (r *AnalysisRepository) Since(ctx context.Context, since time.Time) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE created_at >= ? ORDER BY created_at ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*domain.Record, error) {
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var row db.Row
		if err := rows.Scan(append(row.Dest(), &row.CreatedAt)...); err != nil {
			return nil, err
		}
		rec, err := row.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
